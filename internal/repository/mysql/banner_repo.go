package mysql

import (
	"database/sql"
	"time"

	"github.com/huawsvantoan/webbanbanhngot-sub000/internal/model"
)

// bannerRepository cài đặt BannerRepository trên MySQL
type bannerRepository struct {
	db *sql.DB
}

// NewBannerRepository tạo một bannerRepository mới
func NewBannerRepository(db *sql.DB) *bannerRepository {
	return &bannerRepository{db}
}

const bannerColumns = `id, title, image_url, position, is_active, created_at, updated_at`

func scanBanner(row interface{ Scan(...interface{}) error }) (*model.Banner, error) {
	var b model.Banner
	err := row.Scan(&b.ID, &b.Title, &b.ImageURL, &b.Position, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bannerRepository) Create(banner *model.Banner) error {
	result, err := r.db.Exec(`
		INSERT INTO banners (title, image_url, position, is_active) VALUES (?, ?, ?, ?)`,
		banner.Title, banner.ImageURL, banner.Position, banner.IsActive)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	banner.ID = int(id)
	return nil
}

func (r *bannerRepository) FindByID(id int) (*model.Banner, error) {
	b, err := scanBanner(r.db.QueryRow(`SELECT `+bannerColumns+` FROM banners WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *bannerRepository) listWhere(where string) ([]*model.Banner, error) {
	rows, err := r.db.Query(`SELECT ` + bannerColumns + ` FROM banners` + where + ` ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []*model.Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *bannerRepository) ListActive() ([]*model.Banner, error) {
	return r.listWhere(` WHERE is_active = true`)
}

func (r *bannerRepository) ListAll() ([]*model.Banner, error) {
	return r.listWhere(``)
}

func (r *bannerRepository) Update(banner *model.Banner) error {
	_, err := r.db.Exec(`
		UPDATE banners SET title = ?, image_url = ?, position = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		banner.Title, banner.ImageURL, banner.Position, banner.IsActive, time.Now(), banner.ID)
	return err
}

func (r *bannerRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM banners WHERE id = ?`, id)
	return err
}
