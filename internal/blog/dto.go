package blog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/blogapi/pkg/pointer"
)

// Validate requires both name parts. It runs whenever an author is present
// in a create or update body.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FirstName, validation.Required),
		validation.Field(&a.LastName, validation.Required),
	)
}

// CreatePostRequest is the body of POST /posts.
//
// Fields are pointers so that an absent key and an empty value are both
// reported as missing.
type CreatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *Author `json:"author"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Author, validation.Required),
	)
}

// Post builds the record to insert. Call only after Validate passed.
func (r CreatePostRequest) Post() *Post {
	return &Post{
		Title:   *r.Title,
		Content: *r.Content,
		Author:  *r.Author,
	}
}

// UpdatePostRequest is the body of PUT /posts/{id}.
//
// Only ID and the updatable fields are decoded; any other key in the body
// is dropped by the JSON decoder.
type UpdatePostRequest struct {
	ID      *string `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *Author `json:"author"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Author),
	)
}

// Patch keeps the updatable fields present in the body.
func (r UpdatePostRequest) Patch() PostPatch {
	return PostPatch{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
	}
}

// BodyID returns the id carried in the body, or "" when absent.
func (r UpdatePostRequest) BodyID() string {
	return pointer.Val(r.ID)
}
