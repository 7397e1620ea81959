// Package authz decides whether an authenticated actor may mutate a resource.
package authz

import "github.com/odm275/dev-network/internal/apperr"

type Operation int

const (
	DeletePost Operation = iota
	LikePost
	UnlikePost
	CommentPost
	DeleteComment
	UpdateProfile
	DeleteProfile
	DeleteProfileEntry
)

func (op Operation) String() string {
	switch op {
	case DeletePost:
		return "delete-post"
	case LikePost:
		return "like-post"
	case UnlikePost:
		return "unlike-post"
	case CommentPost:
		return "comment-post"
	case DeleteComment:
		return "delete-comment"
	case UpdateProfile:
		return "update-profile"
	case DeleteProfile:
		return "delete-profile"
	case DeleteProfileEntry:
		return "delete-profile-entry"
	default:
		return "unknown"
	}
}

// Resource is anything owned by exactly one user.
type Resource interface {
	OwnerID() string
}

// Authorize returns nil when actorID may perform op on resource.
func Authorize(actorID string, resource Resource, op Operation) error {
	if actorID == "" {
		return apperr.ErrUnauthenticated
	}

	switch op {
	case LikePost, UnlikePost, CommentPost, DeleteComment:
		return nil
	case DeletePost, UpdateProfile, DeleteProfile, DeleteProfileEntry:
		if resource.OwnerID() == actorID {
			return nil
		}
		return apperr.ErrForbidden
	default:
		return apperr.ErrForbidden
	}
}
