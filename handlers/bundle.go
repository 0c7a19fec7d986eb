// File: shootday/handlers/bundle.go
package handlers

import (
	"shootday/services/attendance"
	"shootday/services/gateway"
	"shootday/services/myday"
	"shootday/services/slotcheck"
	"shootday/services/workflow"
)

// HandlerBundle groups the endpoint handlers and the services they
// delegate to.
type HandlerBundle struct {
	Gateway    *gateway.Client
	Workflow   workflow.WorkflowService
	MyDay      myday.MyDayService
	Attendance attendance.AttendanceService
	SlotCheck  slotcheck.SlotCheckService
}
