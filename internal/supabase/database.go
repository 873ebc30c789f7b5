package supabase

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const orderColumns = `id, seq, client_id, artist_id, status, description,
	size, style, tone, material, frame_size, background,
	price, invoice, created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID, &order.Seq, &order.ClientID, &order.ArtistID, &order.Status,
		&order.Description, &order.Size, &order.Style, &order.Tone,
		&order.Material, &order.FrameSize, &order.Background,
		&order.Price, &order.Invoice,
		&order.CreatedAt, &order.UpdatedAt, &order.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *DatabaseClient) CreateOrder(orderID, clientID uuid.UUID, details models.OrderDetails) (*models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(`
		INSERT INTO orders (id, client_id, status, description, size, style, tone, material, frame_size, background)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,''), NULLIF($9,''), NULLIF($10,''))
		RETURNING `+orderColumns,
		orderID, clientID, models.OrderPending, details.Description,
		details.Size, details.Style, details.Tone, details.Material,
		details.FrameSize, details.Background,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) listOrders(column string, id uuid.UUID) ([]models.Order, error) {
	// created_at DESC with seq preserving insertion order among ties
	rows, err := d.db.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+column+` = $1
		ORDER BY created_at DESC, seq ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (d *DatabaseClient) ListOrdersForClient(clientID uuid.UUID) ([]models.Order, error) {
	return d.listOrders("client_id", clientID)
}

func (d *DatabaseClient) ListOrdersForArtist(artistID uuid.UUID) ([]models.Order, error) {
	return d.listOrders("artist_id", artistID)
}

// UpdateOrderStatus moves an order from the expected status to next in one
// guarded statement, so a concurrent transition cannot be overwritten.
// Returns sql.ErrNoRows when the order is no longer in the expected status.
func (d *DatabaseClient) UpdateOrderStatus(orderID uuid.UUID, expected, next models.OrderStatus) (*models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(`
		UPDATE orders
		SET status = $3,
		    updated_at = NOW(),
		    completed_at = CASE WHEN $3 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns,
		orderID, expected, next,
	))
	if err != nil {
		return nil, err
	}
	return order, nil
}

// PriceOrder assigns the artist, records price and invoice, and moves the
// order to priced, all atomically and only from pending.
func (d *DatabaseClient) PriceOrder(orderID, artistID uuid.UUID, price float64, invoice json.RawMessage) (*models.Order, error) {
	order, err := scanOrder(d.db.QueryRow(`
		UPDATE orders
		SET artist_id = $2, price = $3, invoice = $4, status = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
		RETURNING `+orderColumns,
		// lib/pq would encode raw bytes as bytea, which jsonb rejects
		orderID, artistID, price, string(invoice), models.OrderPriced, models.OrderPending,
	))
	if err != nil {
		return nil, err
	}
	return order, nil
}

// InsertComment appends a comment row and bumps the order's updated_at.
// Appends are plain inserts, so concurrent writers all survive.
func (d *DatabaseClient) InsertComment(commentID, orderID, authorID uuid.UUID, body string) (*models.Comment, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var comment models.Comment
	err = tx.QueryRow(`
		INSERT INTO order_comments (id, order_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_id, author_id, body, created_at
	`, commentID, orderID, authorID, body).Scan(
		&comment.ID, &comment.OrderID, &comment.AuthorID, &comment.Body, &comment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	if _, err := tx.Exec(`UPDATE orders SET updated_at = NOW() WHERE id = $1`, orderID); err != nil {
		return nil, fmt.Errorf("failed to touch order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit comment: %w", err)
	}
	return &comment, nil
}

func (d *DatabaseClient) ListComments(orderID uuid.UUID) ([]models.Comment, error) {
	rows, err := d.db.Query(`
		SELECT id, order_id, author_id, body, created_at
		FROM order_comments
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.OrderID, &comment.AuthorID, &comment.Body, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (d *DatabaseClient) InsertAttachment(attachmentID, orderID, authorID uuid.UUID, url, filename, storagePath string) (*models.Attachment, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var attachment models.Attachment
	err = tx.QueryRow(`
		INSERT INTO order_attachments (id, order_id, author_id, url, filename, storage_path)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''))
		RETURNING id, order_id, author_id, url, filename, storage_path, created_at
	`, attachmentID, orderID, authorID, url, filename, storagePath).Scan(
		&attachment.ID, &attachment.OrderID, &attachment.AuthorID,
		&attachment.URL, &attachment.Filename, &attachment.StoragePath, &attachment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}

	if _, err := tx.Exec(`UPDATE orders SET updated_at = NOW() WHERE id = $1`, orderID); err != nil {
		return nil, fmt.Errorf("failed to touch order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attachment: %w", err)
	}
	return &attachment, nil
}

func (d *DatabaseClient) ListAttachments(orderID uuid.UUID) ([]models.Attachment, error) {
	rows, err := d.db.Query(`
		SELECT id, order_id, author_id, url, filename, storage_path, created_at
		FROM order_attachments
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		var attachment models.Attachment
		err := rows.Scan(
			&attachment.ID, &attachment.OrderID, &attachment.AuthorID,
			&attachment.URL, &attachment.Filename, &attachment.StoragePath, &attachment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	return attachments, rows.Err()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
