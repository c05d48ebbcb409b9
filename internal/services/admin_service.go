package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChristianBello1/hosting/internal/models"
)

// AdminServiceProvider defines the interface for admin account services.
type AdminServiceProvider interface {
	CountAdmins() (int, error)
	CreateAdmin(name, email, password, role string) (models.Admin, error)
	GetAdminByID(id string) (models.Admin, error)
	AuthenticateAdmin(email, password string) (models.Admin, error)
}

// AdminService provides business logic for console operator accounts.
type AdminService struct {
	db *sql.DB
}

// NewAdminService creates a new AdminService.
func NewAdminService(db *sql.DB) *AdminService {
	return &AdminService{db: db}
}

// CountAdmins returns the number of registered admins.
func (s *AdminService) CountAdmins() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	return count, err
}

// CreateAdmin creates a new admin, hashing the password.
func (s *AdminService) CreateAdmin(name, email, password, role string) (models.Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO admins(id, name, email, password_hash, role, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Admin{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Role, formatTime(admin.CreatedAt))
	if err != nil {
		return models.Admin{}, err
	}

	admin.PasswordHash = ""
	return admin, nil
}

// GetAdminByID retrieves a single admin by ID.
func (s *AdminService) GetAdminByID(id string) (models.Admin, error) {
	row := s.db.QueryRow("SELECT id, name, email, role, created_at FROM admins WHERE id = ?", id)

	var admin models.Admin
	var createdAt string
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Admin{}, fmt.Errorf("admin %s: %w", id, ErrNotFound)
		}
		return models.Admin{}, err
	}
	if admin.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Admin{}, fmt.Errorf("parse admin created_at: %w", err)
	}
	return admin, nil
}

// getAdminByEmail retrieves an admin including the password hash.
func (s *AdminService) getAdminByEmail(email string) (models.Admin, error) {
	row := s.db.QueryRow("SELECT id, name, email, password_hash, role, created_at FROM admins WHERE email = ?", email)

	var admin models.Admin
	var createdAt string
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.Role, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Admin{}, fmt.Errorf("admin %s: %w", email, ErrNotFound)
		}
		return models.Admin{}, err
	}
	if admin.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Admin{}, fmt.Errorf("parse admin created_at: %w", err)
	}
	return admin, nil
}

// AuthenticateAdmin verifies an admin's credentials.
func (s *AdminService) AuthenticateAdmin(email, password string) (models.Admin, error) {
	admin, err := s.getAdminByEmail(email)
	if err != nil {
		return models.Admin{}, fmt.Errorf("authentication failed: admin not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return models.Admin{}, fmt.Errorf("authentication failed: invalid password")
	}

	// Don't send the password hash to the client
	admin.PasswordHash = ""
	return admin, nil
}
