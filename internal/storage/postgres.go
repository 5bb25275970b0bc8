package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"foodorder/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// menuItemRow mirrors the flat column layout of menu_items. Mapping between
// row and domain shapes is total: every field round-trips.
type menuItemRow struct {
	ID          string
	Name        string
	Price       int64
	Category    string
	ImageURL    string
	Description string
	Available   bool
}

func menuItemRowFrom(item domain.MenuItem) menuItemRow {
	return menuItemRow{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Category:    string(item.Category),
		ImageURL:    item.ImageURL,
		Description: item.Description,
		Available:   item.Available,
	}
}

func (r menuItemRow) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Category:    domain.Category(r.Category),
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Available:   r.Available,
	}
}

// orderRow mirrors the orders table. Line items travel as a JSON snapshot in
// a single column so historical orders never reference live catalog rows.
type orderRow struct {
	ID           string
	TableID      string
	CustomerName string
	Items        []byte
	Total        int64
	Status       string
	Timestamp    int64
	Note         string
}

func orderRowFrom(order domain.Order) (orderRow, error) {
	items, err := json.Marshal(order.Lines)
	if err != nil {
		return orderRow{}, fmt.Errorf("marshal order lines: %w", err)
	}
	return orderRow{
		ID:           order.ID,
		TableID:      order.TableID,
		CustomerName: order.CustomerName,
		Items:        items,
		Total:        order.Total,
		Status:       string(order.Status),
		Timestamp:    order.Timestamp,
		Note:         order.Note,
	}, nil
}

func (r orderRow) toDomain() (domain.Order, error) {
	var lines []domain.OrderLine
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &lines); err != nil {
			return domain.Order{}, fmt.Errorf("unmarshal order lines: %w", err)
		}
	}
	return domain.Order{
		ID:           r.ID,
		TableID:      r.TableID,
		CustomerName: r.CustomerName,
		Lines:        lines,
		Total:        r.Total,
		Status:       domain.Status(r.Status),
		Timestamp:    r.Timestamp,
		Note:         r.Note,
	}, nil
}

func (r *PostgresRepository) CreateMenuItem(item *domain.MenuItem) error {
	row := menuItemRowFrom(*item)
	_, err := r.DB.Exec(`
		INSERT INTO menu_items (id, name, price, category, image_url, description, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.Name, row.Price, row.Category, row.ImageURL, row.Description, row.Available)
	return err
}

func (r *PostgresRepository) ListMenuItems() ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, price, category, COALESCE(image_url, ''), COALESCE(description, ''), available
		FROM menu_items
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var row menuItemRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Price, &row.Category, &row.ImageURL, &row.Description, &row.Available); err != nil {
			continue
		}
		items = append(items, row.toDomain())
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(id string) (*domain.MenuItem, error) {
	var row menuItemRow
	err := r.DB.QueryRow(`
		SELECT id, name, price, category, COALESCE(image_url, ''), COALESCE(description, ''), available
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&row.ID, &row.Name, &row.Price, &row.Category, &row.ImageURL, &row.Description, &row.Available)
	if err != nil {
		return nil, err
	}
	item := row.toDomain()
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItem(item *domain.MenuItem) (int64, error) {
	row := menuItemRowFrom(*item)
	result, err := r.DB.Exec(`
		UPDATE menu_items
		SET name=$1, price=$2, category=$3, image_url=$4, description=$5, available=$6
		WHERE id=$7`,
		row.Name, row.Price, row.Category, row.ImageURL, row.Description, row.Available, row.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) DeleteMenuItem(id string) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	row, err := orderRowFrom(*order)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(`
		INSERT INTO orders (id, table_id, customer_name, items, total, status, ts, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.ID, row.TableID, row.CustomerName, row.Items, row.Total, row.Status, row.Timestamp, row.Note)
	return err
}

func (r *PostgresRepository) GetOrder(id string) (*domain.Order, error) {
	var row orderRow
	err := r.DB.QueryRow(`
		SELECT id, table_id, COALESCE(customer_name, ''), items, total, status, ts, COALESCE(note, '')
		FROM orders
		WHERE id = $1`, id).
		Scan(&row.ID, &row.TableID, &row.CustomerName, &row.Items, &row.Total, &row.Status, &row.Timestamp, &row.Note)
	if err != nil {
		return nil, err
	}
	order, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, table_id, COALESCE(customer_name, ''), items, total, status, ts, COALESCE(note, '')
		FROM orders
		ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(&row.ID, &row.TableID, &row.CustomerName, &row.Items, &row.Total, &row.Status, &row.Timestamp, &row.Note); err != nil {
			continue
		}
		order, err := row.toDomain()
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus writes the single status field. Totals and line items
// are immutable after creation and are never touched here.
func (r *PostgresRepository) UpdateOrderStatus(id string, status domain.Status) (int64, error) {
	result, err := r.DB.Exec("UPDATE orders SET status=$1 WHERE id=$2", string(status), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price BIGINT NOT NULL,
			category TEXT NOT NULL,
			image_url TEXT,
			description TEXT,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			table_id TEXT NOT NULL,
			customer_name TEXT,
			items JSONB NOT NULL,
			total BIGINT NOT NULL,
			status TEXT NOT NULL,
			ts BIGINT NOT NULL,
			note TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
