package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iafluence/chatwidget/internal/domain"
)

// ClientRepository handles client persistence
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(client *domain.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	optionsJSON, err := json.Marshal(client.Options)
	if err != nil {
		return fmt.Errorf("failed to encode widget options: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO clients (id, name, server_url, widget_options, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, client.ID, client.Name, client.ServerURL, string(optionsJSON), client.CreatedAt, client.UpdatedAt)

	return err
}

// Get retrieves a client by ID. It returns nil, nil when the client does not exist.
func (r *ClientRepository) Get(id string) (*domain.Client, error) {
	client := &domain.Client{}
	var optionsJSON string

	err := r.db.QueryRow(`
		SELECT id, name, server_url, widget_options, created_at, updated_at
		FROM clients WHERE id = ?
	`, id).Scan(&client.ID, &client.Name, &client.ServerURL, &optionsJSON,
		&client.CreatedAt, &client.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(optionsJSON), &client.Options); err != nil {
		return nil, fmt.Errorf("failed to decode widget options for %s: %w", id, err)
	}

	return client, nil
}

// List retrieves all clients, newest first
func (r *ClientRepository) List() ([]*domain.Client, error) {
	rows, err := r.db.Query(`
		SELECT id, name, server_url, widget_options, created_at, updated_at
		FROM clients ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client := &domain.Client{}
		var optionsJSON string

		if err := rows.Scan(&client.ID, &client.Name, &client.ServerURL, &optionsJSON,
			&client.CreatedAt, &client.UpdatedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(optionsJSON), &client.Options); err != nil {
			return nil, fmt.Errorf("failed to decode widget options for %s: %w", client.ID, err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Update updates a client
func (r *ClientRepository) Update(client *domain.Client) error {
	client.UpdatedAt = time.Now()
	optionsJSON, err := json.Marshal(client.Options)
	if err != nil {
		return fmt.Errorf("failed to encode widget options: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE clients SET name = ?, server_url = ?, widget_options = ?, updated_at = ?
		WHERE id = ?
	`, client.Name, client.ServerURL, string(optionsJSON), client.UpdatedAt, client.ID)

	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("client %s: %w", client.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a client
func (r *ClientRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Count returns the number of registered clients
func (r *ClientRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count)
	return count, err
}
