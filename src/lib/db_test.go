package lib

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGormLogger(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT * FROM users WHERE email = 'x'", 0 }

	t.Run("Record Not Found Is Quiet", func(t *testing.T) {
		var out bytes.Buffer
		GormLogger(&out).Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
		assert.Empty(out.String())
	})

	t.Run("Other Errors Are Logged", func(t *testing.T) {
		var out bytes.Buffer
		GormLogger(&out).Trace(ctx, time.Now(), query, errors.New("disk I/O error"))
		assert.Contains(out.String(), "disk I/O error")
	})

	t.Run("Lookups Through Gorm", func(t *testing.T) {
		var out bytes.Buffer
		db, err := gorm.Open(sqlite.Open(MemoryDSN("gorm-logger")), &gorm.Config{Logger: GormLogger(&out)})
		assert.Nil(err)
		if db == nil {
			return
		}
		assert.Nil(db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY)").Error)

		var row struct{ ID int }
		err = db.Table("items").Where("id = ?", 1).First(&row).Error
		assert.ErrorIs(err, gorm.ErrRecordNotFound)
		assert.Empty(out.String())
	})
}
