package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"vendorcompare/models"
)

var db *sql.DB

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Connection pool settings for light server load
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// SaveSession saves a new session for a user. If allowMultipleSessions is
// false, all existing sessions for the user are removed first so only one
// device stays logged in.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		deleteAllQuery := `DELETE FROM sessions WHERE user_id = $1`
		_, err := db.Exec(deleteAllQuery, session.UserID)
		if err != nil {
			return fmt.Errorf("failed to delete all user sessions: %v", err)
		}
	}

	insertQuery := `INSERT INTO sessions (user_id, session_id, host_name, ip_address, timestp, expires_at)
                    VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.Exec(insertQuery, session.UserID, session.SessionID, session.HostName, session.IPAddress, session.Timestamp, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %v", err)
	}
	return nil
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	var session models.Session
	query := `SELECT user_id, session_id, host_name, ip_address, timestp, expires_at
              FROM sessions WHERE session_id = $1 AND expires_at > NOW()`
	err := db.QueryRow(query, sessionID).Scan(
		&session.UserID, &session.SessionID, &session.HostName,
		&session.IPAddress, &session.Timestamp, &session.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func DeleteSession(db *sql.DB, userID int) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	_, err := db.Exec(query, userID)
	return err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password, first_name, last_name FROM users WHERE email = $1`
	err := db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserBySessionID resolves the user owning an unexpired session.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	var user models.User
	query := `SELECT u.id, u.email, u.password, u.first_name, u.last_name
              FROM users u
              JOIN sessions s ON s.user_id = u.id
              WHERE s.session_id = $1 AND s.expires_at > NOW()`
	err := db.QueryRow(query, sessionID).Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CleanupExpiredSessions(db *sql.DB) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= NOW()`)
	return err
}
