package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/communehq/commune/config"
	"github.com/communehq/commune/pkg/random"
)

// Bootstraps the instance: an admin user with a verified profile, the
// instance-admin group holding them, and a starter template. Exactly
// one group may carry the admin instance role, so re-running against a
// provisioned database is a no-op. Writes go straight to storage; the
// domain cannot express "first admin" because every transition demands
// a certificate from an already-provisioned instance.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var existing string
	err = db.QueryRow(`SELECT id FROM group_permission_directories WHERE role_in_instance = 'admin'`).Scan(&existing)
	if err == nil {
		fmt.Printf("instance already provisioned: admin group %s\n", existing)
		return
	}
	if err != sql.ErrNoRows {
		log.Fatalf("failed to check admin group: %v", err)
	}

	rnd := random.New()
	mustID := func() string {
		id, err := rnd.ID()
		if err != nil {
			log.Fatalf("failed to generate id: %v", err)
		}
		return id
	}
	userID := mustID()
	groupID := mustID()
	templateID := mustID()
	invitationSecret, err := rnd.ShortSecret()
	if err != nil {
		log.Fatalf("failed to generate invitation secret: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("failed to begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	exec := func(query string, args ...any) {
		if _, err := tx.Exec(query, args...); err != nil {
			log.Fatalf("seed statement failed: %v", err)
		}
	}

	exec(`INSERT INTO users (id, email, created_at) VALUES ($1, $2, $3)`, userID, cfg.InstanceAdminEmail, now)
	exec(`INSERT INTO user_accounts (id) VALUES ($1)`, userID)
	exec(`INSERT INTO email_verification_directories (id) VALUES ($1)`, userID)
	exec(`INSERT INTO bookmark_directories (id) VALUES ($1)`, userID)
	exec(`INSERT INTO user_profiles (id, name, display_name, expires_at) VALUES ($1, $2, $3, $4)`,
		userID, "instance-admin", "Instance Admin", now.Add(365*24*time.Hour))

	exec(`INSERT INTO groups (id, created_at) VALUES ($1, $2)`, groupID, now)
	exec(`INSERT INTO group_member_directories (id, invitation_secret) VALUES ($1, $2)`, groupID, invitationSecret)
	exec(`INSERT INTO group_members (group_id, user_id, role) VALUES ($1, $2, 'admin')`, groupID, userID)
	exec(`INSERT INTO group_permission_directories (id, role_in_instance) VALUES ($1, 'admin')`, groupID)
	exec(`INSERT INTO group_profiles (id, name, display_name) VALUES ($1, $2, $3)`,
		groupID, cfg.InstanceGroupName, "Instance Admins")

	starterSchema, err := json.Marshal(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"body": map[string]any{"type": "string"},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"body"},
	})
	if err != nil {
		log.Fatalf("failed to marshal starter schema: %v", err)
	}
	exec(`INSERT INTO templates (id, name_in_singular, name_in_plural, display_name, properties_schema, created_at)
		VALUES ($1, 'article', 'articles', 'Article', $2, $3)`, templateID, starterSchema, now)
	exec(`INSERT INTO group_allowed_templates (group_id, template_id) VALUES ($1, $2)`, groupID, templateID)

	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit seed: %v", err)
	}

	fmt.Printf("seeded instance: admin user %s (%s), admin group %s (%s), starter template %s\n",
		userID, cfg.InstanceAdminEmail, groupID, cfg.InstanceGroupName, templateID)
	fmt.Printf("invitation secret for %s: %s\n", cfg.InstanceGroupName, invitationSecret)
}
