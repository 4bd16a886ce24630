package blog

import (
	"fmt"
	"time"
)

// Author is the structured author of a post. It is stored as-is and
// flattened to a display string on output.
type Author struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName"  bson:"lastName"`
}

// String renders the author as "<firstName> <lastName>".
func (a Author) String() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// Post is the stored form of a blog post.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorString is the read-only display projection of Author. Not persisted.
func (p *Post) AuthorString() string {
	return p.Author.String()
}

// PostView is the external projection of a post.
type PostView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Serialize projects a stored post to its wire shape.
func (p *Post) Serialize() PostView {
	return PostView{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.AuthorString(),
	}
}

// PostPatch is a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title   *string
	Content *string
	Author  *Author
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Author == nil
}

// Apply writes the present fields onto post.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
}

// Fields returns the present fields keyed by their stored names.
func (p PostPatch) Fields() map[string]any {
	fields := make(map[string]any, 3)
	if p.Title != nil {
		fields[FieldTitle] = *p.Title
	}
	if p.Content != nil {
		fields[FieldContent] = *p.Content
	}
	if p.Author != nil {
		fields[FieldAuthor] = *p.Author
	}
	return fields
}

// Field names, shared by validation and the stores.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldAuthor    = "author"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)

// UpdatableFields is the allow-list applied by the update operation.
var UpdatableFields = []string{FieldTitle, FieldContent, FieldAuthor}
