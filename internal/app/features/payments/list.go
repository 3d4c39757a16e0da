// internal/app/features/payments/list.go
package payments

import (
	"errors"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	paymentstore "github.com/dalemusser/recoveryhub/internal/app/store/payments"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const (
	opList         = "payment.list"
	opDetails      = "payment.details"
	opDownloadTask = "payment.download_task"
)

// HandleList returns one page of money transactions. At least one filter
// is required and an empty result is a 404.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	b, err := in.builder()
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	policy := listquery.For("List_All_Payment_Cases")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := paymentstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Payment cases retrieved successfully", rows, paging.NewMeta(page, total))
}

func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in idInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	m, err := paymentstore.New(h.DB).Get(ctx, in.MoneyTransactionID)
	if errors.Is(err, paymentstore.ErrNotFound) {
		err = apperr.NotFoundf("Payment not found")
	}
	if err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}
	respond.OK(w, "Payment details retrieved successfully", m)
}

// HandleDownloadTask records a request to export the payment list.
func (h *Handler) HandleDownloadTask(w http.ResponseWriter, r *http.Request) {
	var in downloadInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	b, err := in.builder()
	if err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	if err := listquery.For("Create_Task_For_Downloading_Payment_List").CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	p := tasks.Download(tasks.TemplatePaymentList, in.params(), in.CreatedBy)
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opDownloadTask, p)
}
