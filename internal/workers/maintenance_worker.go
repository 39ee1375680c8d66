package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

type MaintenanceWorker struct {
	db *gorm.DB
}

func NewMaintenanceWorker(db *gorm.DB) *MaintenanceWorker {
	return &MaintenanceWorker{db: db}
}

// Start запускает фоновые задачи обслуживания
func (w *MaintenanceWorker) Start(ctx context.Context) {
	// Чистка просроченных токенов сброса пароля каждый час
	go w.cleanExpiredResetTokens(ctx)

	// Чистка неподтвержденных аккаунтов раз в сутки
	go w.cleanUnverifiedAccounts(ctx)
}

// cleanExpiredResetTokens затирает токены сброса, выписанные давно.
// Токен сам по себе истекает как JWT, но хранить мусор в базе незачем.
func (w *MaintenanceWorker) cleanExpiredResetTokens(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Maintenance worker stopped")
			return
		case <-ticker.C:
			result := w.db.Exec(`
				UPDATE users
				SET token = '', updated_at = NOW()
				WHERE token <> ''
				AND updated_at < NOW() - INTERVAL '1 hour'
			`)
			if result.Error != nil {
				log.Printf("Error cleaning expired reset tokens: %v", result.Error)
			} else if result.RowsAffected > 0 {
				log.Printf("Cleared %d expired reset tokens", result.RowsAffected)
			}
		}
	}
}

// cleanUnverifiedAccounts удаляет аккаунты, не подтвердившие email
// за тридцать дней. Ссылка верификации к этому моменту давно мертва.
func (w *MaintenanceWorker) cleanUnverifiedAccounts(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := w.db.Exec(`
				DELETE FROM users
				WHERE is_verified = false
				AND is_admin = false
				AND created_at < NOW() - INTERVAL '30 days'
			`)
			if result.Error != nil {
				log.Printf("Error cleaning unverified accounts: %v", result.Error)
			} else if result.RowsAffected > 0 {
				log.Printf("Removed %d stale unverified accounts", result.RowsAffected)
			}
		}
	}
}
