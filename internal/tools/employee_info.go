package tools

import (
	"context"
	"log"

	"github.com/jonathan/talent-matcher/internal/types"
)

// EmployeeInfoArgs are the declared arguments of the getEmployeeInformation tool.
type EmployeeInfoArgs struct {
	EmployeeIDs []string `json:"employeeIds"`
}

// EmployeeInfoResult maps employee id to the full employee bundle. Same
// error contract as getSkillTags: a flagged failure with an empty payload.
type EmployeeInfoResult struct {
	Success   bool                            `json:"success"`
	Employees map[string]types.EmployeeBundle `json:"employees"`
	Error     string                          `json:"error,omitempty"`
}

func (r *Registry) getEmployeeInformation(ctx context.Context, rawArgs string) EmployeeInfoResult {
	var args EmployeeInfoArgs
	decodeArgs(rawArgs, &args)

	// An empty id list short-circuits without touching the store.
	if len(args.EmployeeIDs) == 0 {
		return EmployeeInfoResult{Success: true, Employees: map[string]types.EmployeeBundle{}}
	}

	employees, err := r.store.EmployeesByIDs(ctx, args.EmployeeIDs)
	if err != nil {
		log.Printf("[tools] getEmployeeInformation lookup failed: %v", err)
		return EmployeeInfoResult{Success: false, Employees: map[string]types.EmployeeBundle{}, Error: "employee lookup failed"}
	}
	if employees == nil {
		employees = map[string]types.EmployeeBundle{}
	}
	return EmployeeInfoResult{Success: true, Employees: employees}
}
