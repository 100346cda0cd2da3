package worker

import (
	"github.com/spec-kit/storefront/internal/service"
)

// StartActivityWorker registers audit trail handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
