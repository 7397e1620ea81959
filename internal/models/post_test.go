package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odm275/dev-network/internal/apperr"
)

func countLikes(p *Post, userID string) int {
	n := 0
	for _, l := range p.Likes {
		if l.UserID == userID {
			n++
		}
	}
	return n
}

func TestLikeAtMostOncePerUser(t *testing.T) {
	post := &Post{ID: "p1", UserID: "u1", Likes: Likes{}}

	ops := []struct {
		user string
		like bool
	}{
		{"u2", true}, {"u2", true}, {"u3", true}, {"u2", false},
		{"u2", false}, {"u2", true}, {"u1", true}, {"u2", true},
	}
	for _, op := range ops {
		if op.like {
			_ = post.Like(op.user)
		} else {
			_ = post.Unlike(op.user)
		}
		for _, u := range []string{"u1", "u2", "u3"} {
			require.LessOrEqual(t, countLikes(post, u), 1)
		}
	}

	require.Equal(t, Likes{{UserID: "u1"}, {UserID: "u2"}, {UserID: "u3"}}, post.Likes)
}

func TestLikeRejectsDuplicate(t *testing.T) {
	post := &Post{Likes: Likes{}}

	require.NoError(t, post.Like("u2"))
	require.Equal(t, Likes{{UserID: "u2"}}, post.Likes)

	err := post.Like("u2")
	require.ErrorIs(t, err, apperr.ErrAlreadyLiked)
	require.Equal(t, Likes{{UserID: "u2"}}, post.Likes)

	require.NoError(t, post.Unlike("u2"))
	require.Empty(t, post.Likes)
}

func TestUnlikeWithoutLikeLeavesLikesUnchanged(t *testing.T) {
	post := &Post{Likes: Likes{{UserID: "u3"}}}

	err := post.Unlike("u2")
	require.ErrorIs(t, err, apperr.ErrNotLiked)
	require.Equal(t, Likes{{UserID: "u3"}}, post.Likes)
}

func TestLikesInsertedAtFront(t *testing.T) {
	post := &Post{}
	require.NoError(t, post.Like("a"))
	require.NoError(t, post.Like("b"))

	require.Equal(t, Likes{{UserID: "b"}, {UserID: "a"}}, post.Likes)
}

func TestCommentRoundTrip(t *testing.T) {
	post := &Post{Comments: Comments{{ID: "c0", UserID: "u9", Text: "first"}}}
	before := append(Comments{}, post.Comments...)

	added := post.AddComment(Comment{UserID: "u2", Text: "nice"})
	require.NotEmpty(t, added.ID)
	require.Equal(t, added, post.Comments[0])

	require.Equal(t, "nice", post.Comments[0].Text)

	require.NoError(t, post.RemoveComment(added.ID))
	require.Equal(t, before, post.Comments)
}

func TestRemoveCommentRemovesTheLocatedEntry(t *testing.T) {
	post := &Post{Comments: Comments{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	require.NoError(t, post.RemoveComment("c"))
	require.Equal(t, Comments{{ID: "a"}, {ID: "b"}}, post.Comments)

	require.ErrorIs(t, post.RemoveComment("zzz"), apperr.ErrCommentNotFound)
	require.Len(t, post.Comments, 2)
}

func TestLikesJSONColumn(t *testing.T) {
	var empty Likes
	v, err := empty.Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	var scanned Likes
	require.NoError(t, scanned.Scan([]byte(`[{"user":"u1"}]`)))
	require.Equal(t, Likes{{UserID: "u1"}}, scanned)

	require.Error(t, scanned.Scan(42))
}

func TestNewPostSerialisesEmptyCollections(t *testing.T) {
	raw, err := json.Marshal(Post{ID: "p", Likes: Likes{}, Comments: Comments{}})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"likes":[]`)
	require.Contains(t, string(raw), `"comments":[]`)
}
