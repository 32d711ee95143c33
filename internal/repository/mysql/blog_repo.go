package mysql

import (
	"database/sql"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/util"
	"go.uber.org/zap"
)

// blogRepository cài đặt BlogRepository trên MySQL
type blogRepository struct {
	db *sql.DB
}

// NewBlogRepository tạo một blogRepository mới
func NewBlogRepository(db *sql.DB) *blogRepository {
	return &blogRepository{db}
}

const blogSelect = `
	SELECT b.id, b.author_id, b.title, b.content, b.cover_url, b.status,
	       b.created_at, b.updated_at, b.deleted_at, u.username
	FROM blog_posts b
	JOIN users u ON u.id = b.author_id`

func scanBlogPost(row interface{ Scan(...interface{}) error }) (*model.BlogPost, error) {
	var p model.BlogPost
	var authorName string
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CoverURL, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &authorName,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &model.User{ID: p.AuthorID, Username: authorName}
	return &p, nil
}

func (r *blogRepository) Create(post *model.BlogPost) error {
	result, err := r.db.Exec(`
		INSERT INTO blog_posts (author_id, title, content, cover_url, status)
		VALUES (?, ?, ?, ?, ?)`,
		post.AuthorID, post.Title, post.Content, post.CoverURL, post.Status)
	if err != nil {
		util.Logger.Error("Tạo bài viết thất bại", zap.Error(err), zap.String("title", post.Title))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = int(id)
	return nil
}

func (r *blogRepository) FindByID(id int, includeDeleted bool) (*model.BlogPost, error) {
	query := blogSelect + ` WHERE b.id = ?`
	if !includeDeleted {
		query += ` AND b.deleted_at IS NULL`
	}
	p, err := scanBlogPost(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *blogRepository) list(where string, args []interface{}, page, pageSize int) ([]*model.BlogPost, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM blog_posts b`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.Query(blogSelect+where+` ORDER BY b.created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// ListPublished: chỉ bài published và chưa xóa mềm
func (r *blogRepository) ListPublished(page, pageSize int) ([]*model.BlogPost, int, error) {
	return r.list(` WHERE b.status = ? AND b.deleted_at IS NULL`,
		[]interface{}{model.BlogPublished}, page, pageSize)
}

func (r *blogRepository) ListAll(page, pageSize int, includeDeleted bool) ([]*model.BlogPost, int, error) {
	if includeDeleted {
		return r.list(``, nil, page, pageSize)
	}
	return r.list(` WHERE b.deleted_at IS NULL`, nil, page, pageSize)
}

func (r *blogRepository) Update(post *model.BlogPost) error {
	_, err := r.db.Exec(`
		UPDATE blog_posts SET title = ?, content = ?, cover_url = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		post.Title, post.Content, post.CoverURL, post.Status, time.Now(), post.ID)
	return err
}

func (r *blogRepository) SoftDelete(id int) error {
	_, err := r.db.Exec(`UPDATE blog_posts SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now(), id)
	return err
}

func (r *blogRepository) Purge(id int) error {
	util.Logger.Warn("Xóa vĩnh viễn bài viết", zap.Int("post_id", id))
	_, err := r.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	return err
}
