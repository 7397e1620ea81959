package models

import (
	"errors"
	"time"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/collection"
)

type Post struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	Name      string    `json:"name" db:"name"`
	Avatar    string    `json:"avatar" db:"avatar"`
	Likes     Likes     `json:"likes" db:"likes"`
	Comments  Comments  `json:"comments" db:"comments"`
	CreatedAt time.Time `json:"date" db:"created_at"`
}

// Like is addressed by the liking user's id; a user likes a post at most once.
type Like struct {
	UserID string `json:"user"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

type Likes []Like

type Comments []Comment

func (p *Post) OwnerID() string { return p.UserID }

func likedBy(userID string) func(Like) bool {
	return func(l Like) bool { return l.UserID == userID }
}

func commentWithID(id string) func(Comment) bool {
	return func(c Comment) bool { return c.ID == id }
}

func (p *Post) HasLiked(userID string) bool {
	return collection.Contains(p.Likes, likedBy(userID))
}

// Like records userID at the front of the likes.
func (p *Post) Like(userID string) error {
	if p.HasLiked(userID) {
		return apperr.ErrAlreadyLiked
	}
	p.Likes = collection.Prepend(p.Likes, Like{UserID: userID})
	return nil
}

func (p *Post) Unlike(userID string) error {
	likes, err := collection.RemoveFunc(p.Likes, likedBy(userID))
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.ErrNotLiked
	}
	p.Likes = likes
	return nil
}

// AddComment inserts c at the front, assigning a fresh id.
func (p *Post) AddComment(c Comment) Comment {
	c.ID = collection.NewID()
	p.Comments = collection.Prepend(p.Comments, c)
	return c
}

func (p *Post) RemoveComment(id string) error {
	comments, err := collection.RemoveFunc(p.Comments, commentWithID(id))
	if errors.Is(err, collection.ErrNotFound) {
		return apperr.ErrCommentNotFound
	}
	p.Comments = comments
	return nil
}
