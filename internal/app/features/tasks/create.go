// internal/app/features/tasks/create.go
package tasks

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	tasksys "github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const opCreate = "task.create"

// Reserved keys of a Create_Task body. Everything else is a parameter.
const (
	keyTemplate  = "Template_Task_Id"
	keyTaskType  = "task_type"
	keyCreatedBy = "Created_By"
)

// HandleCreate records an arbitrary task. Keys other than the three
// reserved ones are stored as its parameters.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	if err := inputval.DecodeJSON(r, &body); err != nil {
		respond.Error(w, h.Log, opCreate, err)
		return
	}
	p, err := payloadFrom(body)
	if err != nil {
		respond.Error(w, h.Log, opCreate, err)
		return
	}
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opCreate, p)
}

func payloadFrom(body map[string]any) (tasksys.Payload, error) {
	var p tasksys.Payload
	var missing []string

	template, ok := positiveInt(body[keyTemplate])
	switch {
	case body[keyTemplate] == nil:
		missing = append(missing, keyTemplate)
	case !ok:
		return p, apperr.Invalid("%s must be a positive integer", keyTemplate)
	}
	taskType := stringValue(body[keyTaskType])
	if taskType == "" {
		missing = append(missing, keyTaskType)
	}
	createdBy := stringValue(body[keyCreatedBy])
	if createdBy == "" {
		missing = append(missing, keyCreatedBy)
	}
	if len(missing) > 0 {
		return p, apperr.MissingFields(missing...)
	}

	params := make(map[string]any, len(body))
	for k, v := range body {
		switch k {
		case keyTemplate, keyTaskType, keyCreatedBy:
			continue
		}
		params[k] = v
	}
	return tasksys.Payload{
		TemplateID: template,
		TaskType:   taskType,
		Parameters: params,
		CreatedBy:  createdBy,
	}, nil
}

// positiveInt accepts a JSON number or a numeric string.
func positiveInt(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		// 2^63 is exactly representable and already out of range.
		if x <= 0 || x != math.Trunc(x) || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
