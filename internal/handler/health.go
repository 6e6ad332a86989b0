package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response. Probes that the data
// directory is still writable; never exposes paths or internals.
func Health(dataDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeStatus := "ok"
		probe, err := os.CreateTemp(dataDir, ".healthz-*")
		if err != nil {
			storeStatus = "error"
		} else {
			probe.Close()
			os.Remove(probe.Name())
		}

		status := http.StatusOK
		if storeStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"store": storeStatus,
		})
	}
}
