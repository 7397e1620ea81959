package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
)

func TestOwnerOnlyOperations(t *testing.T) {
	post := &models.Post{ID: "p1", UserID: "u1"}
	profile := &models.Profile{UserID: "u1"}

	for _, op := range []Operation{DeletePost, UpdateProfile, DeleteProfile, DeleteProfileEntry} {
		var res Resource = post
		if op != DeletePost {
			res = profile
		}
		require.NoError(t, Authorize("u1", res, op), op.String())
		require.ErrorIs(t, Authorize("u2", res, op), apperr.ErrForbidden, op.String())
	}
}

func TestOpenPostInteractions(t *testing.T) {
	post := &models.Post{ID: "p1", UserID: "u1"}

	for _, op := range []Operation{LikePost, UnlikePost, CommentPost, DeleteComment} {
		require.NoError(t, Authorize("u1", post, op), op.String())
		require.NoError(t, Authorize("u2", post, op), op.String())
	}
}

func TestEmptyActorIsUnauthenticated(t *testing.T) {
	post := &models.Post{UserID: ""}

	require.ErrorIs(t, Authorize("", post, DeletePost), apperr.ErrUnauthenticated)
	require.ErrorIs(t, Authorize("", post, LikePost), apperr.ErrUnauthenticated)
}
