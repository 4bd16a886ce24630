package schema

// BlogPostTable represents the 'blog_posts' table.
//
// Post fields live in the Doc JSONB column, keyed by their JSON names.
type BlogPostTable struct {
	Table     string
	ID        string
	Doc       string
	CreatedAt string
	UpdatedAt string
}

// BlogPost is the schema definition for blog_posts
var BlogPost = BlogPostTable{
	Table:     "blog_posts",
	ID:        "id",
	Doc:       "doc",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns lists every column in scan order.
func (t BlogPostTable) Columns() []string {
	return []string{t.ID, t.Doc, t.CreatedAt, t.UpdatedAt}
}
