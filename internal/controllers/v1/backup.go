package v1

import (
	"fmt"
	"net/http"

	"github.com/fundledger/backend/internal/httputil"
	"github.com/fundledger/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

// RegisterBackupRoutes registers the routes for backups with
// the RouterGroup that is passed.
func (co Controller) RegisterBackupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBackup)
	r.GET("", co.ExportBackup)
	r.POST("", co.ImportBackup)
}

// OptionsBackup returns the allowed HTTP methods
func (co Controller) OptionsBackup(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// ExportBackup returns a backup of the account as JSON file.
func (co Controller) ExportBackup(c *gin.Context) {
	backup, err := ledger.ExportBackup(co.DB, accountID(c))
	if err != nil {
		abort(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"backup-%s.json\"", backup.CreationTime.Format("2006-01-02")))
	c.JSON(http.StatusOK, backup)
}

// ImportBackup replaces all data of the account with the backup in the body.
func (co Controller) ImportBackup(c *gin.Context) {
	var backup ledger.Backup
	err := httputil.BindData(c, &backup)
	if err != nil {
		abort(c, err)
		return
	}

	err = ledger.ImportBackup(co.DB, accountID(c), backup)
	if err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
