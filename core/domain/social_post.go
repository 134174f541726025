package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a short text published by a user. Name and avatar are copied from
// the author at creation time.
type Post struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	UserID   primitive.ObjectID `json:"user" bson:"user"`
	Text     string             `json:"text" bson:"text"`
	Name     string             `json:"name" bson:"name"`
	Avatar   string             `json:"avatar" bson:"avatar"`
	Likes    []Like             `json:"likes" bson:"likes"`
	Comments []Comment          `json:"comments" bson:"comments"`
	Date     time.Time          `json:"date" bson:"date"`
}

type Like struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	UserID primitive.ObjectID `json:"user" bson:"user"`
}

type Comment struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	UserID primitive.ObjectID `json:"user" bson:"user"`
	Text   string             `json:"text" bson:"text"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar" bson:"avatar"`
	Date   time.Time          `json:"date" bson:"date"`
}

// LikedBy reports whether userID already likes the post.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like prepends a like by userID.
func (p *Post) Like(userID primitive.ObjectID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{ID: primitive.NewObjectID(), UserID: userID}}, p.Likes...)
	return nil
}

// Unlike removes the like of userID.
func (p *Post) Unlike(userID primitive.ObjectID) error {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

// AddComment prepends c.
func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// CommentRemoval tells who removed a comment.
type CommentRemoval int

const (
	RemovedByPostAuthor CommentRemoval = iota + 1
	RemovedByCommentAuthor
)

// RemoveComment deletes a comment on behalf of userID. The post author may
// remove any comment, everyone else only their own.
func (p *Post) RemoveComment(commentID, userID primitive.ObjectID) (CommentRemoval, error) {
	idx := -1
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrCommentNotFound
	}

	var by CommentRemoval
	switch {
	case p.UserID == userID:
		by = RemovedByPostAuthor
	case p.Comments[idx].UserID == userID:
		by = RemovedByCommentAuthor
	default:
		return 0, ErrCommentForbidden
	}

	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
	return by, nil
}
