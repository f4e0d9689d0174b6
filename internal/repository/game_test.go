package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, time.Hour)

	// Given: a new game
	game := entity.NewGame("123", true)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error is returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a game in progress
		game := entity.NewGame("123", true)
		require.NoError(t, game.MakeTurn(entity.PlayerX, 4))
		require.NoError(t, game.MakeTurn(entity.PlayerO, 0))

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game matches the saved one
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// Given: a stored game
		game := entity.NewGame("123", false)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with the existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: it is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, 0)

		// When: DeleteByID is called with a non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameRepository_CompareAndUpdate(t *testing.T) {
	t.Run("CompareAndUpdate_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: a stored game without moves
		game := entity.NewGame("123", true)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: a move is saved against the stored move count
		require.NoError(t, game.MakeTurn(entity.PlayerX, 4))
		err := gameRepo.CompareAndUpdate(ctx, game, 0)

		// Then: the move is stored
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, stored.Moves)
	})

	t.Run("CompareAndUpdate_Conflict", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		// Given: two copies of the same stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame("123", true)))
		first, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		second, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: both copies play a different cell and are saved in turn
		require.NoError(t, first.MakeTurn(entity.PlayerX, 0))
		require.NoError(t, second.MakeTurn(entity.PlayerX, 8))

		require.NoError(t, gameRepo.CompareAndUpdate(ctx, first, 0))
		err = gameRepo.CompareAndUpdate(ctx, second, 0)

		// Then: the second save is refused and the first move is kept
		require.ErrorIs(t, err, ErrGameConflict)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, []int{0}, stored.Moves)
	})

	t.Run("CompareAndUpdate_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Hour)

		err := gameRepo.CompareAndUpdate(ctx, entity.NewGame("9999999", true), 0)

		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
