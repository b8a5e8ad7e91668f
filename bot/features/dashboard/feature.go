package dashboard

import (
	"salespoint/bot/common"
	"salespoint/export"
	"salespoint/service"
)

// Feature serves the /dashboard command
type Feature struct {
	teams      common.TeamDirectory
	dashboards service.DashboardService
	renderer   *export.ReportRenderer
	clock      service.Clock
}

// NewFeature creates a new dashboard feature instance. A nil renderer
// disables the image attachment.
func NewFeature(teams common.TeamDirectory, dashboards service.DashboardService, renderer *export.ReportRenderer, clock service.Clock) *Feature {
	return &Feature{
		teams:      teams,
		dashboards: dashboards,
		renderer:   renderer,
		clock:      clock,
	}
}
