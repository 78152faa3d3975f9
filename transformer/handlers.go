package transformer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	"github.com/Financial-Times/go-logger"
	"github.com/Financial-Times/service-status-go/gtg"
	"github.com/Financial-Times/significant-individuals-bods-transformer/bods"
	si "github.com/Financial-Times/significant-individuals-bods-transformer/significantindividual"
	"github.com/Financial-Times/transactionid-utils-go"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	convertPath = "/significant-individuals/bods"
	batchPath   = "/significant-individuals/bods/batch"
)

type TransformerHandler struct {
	service *Service
}

type batchItem struct {
	Index   int          `json:"index"`
	Bundle  *bods.Bundle `json:"bundle,omitempty"`
	Message string       `json:"message,omitempty"`
}

func NewHandler(service *Service) TransformerHandler {
	return TransformerHandler{service}
}

func (h *TransformerHandler) RegisterHandlers(router *mux.Router) {
	logger.Info("Registering handlers")
	router.Handle(convertPath, handlers.MethodHandler{
		"POST": http.HandlerFunc(h.ConvertSignificantIndividual),
	})
	router.Handle(batchPath, handlers.MethodHandler{
		"POST": http.HandlerFunc(h.ConvertSignificantIndividuals),
	})
}

// HealthCheck converts a reference record so a broken deployment shows up on /__health
func (h *TransformerHandler) HealthCheck() fthealth.Check {
	return fthealth.Check{
		ID:               "bods-conversion-check",
		BusinessImpact:   "Significant individuals cannot be published in BODS format",
		Name:             "Check a reference significant individual converts to BODS",
		PanicGuide:       "https://runbooks.in.ft.com/significant-individuals-bods-transformer",
		Severity:         2,
		TechnicalSummary: "Converting the built-in reference record failed, check the latest deployment",
		Checker:          h.Checker,
	}
}

func (h *TransformerHandler) Checker() (string, error) {
	bundle, err := h.service.converter.Convert(referenceRecord)
	if err != nil {
		return "Reference record conversion failed", err
	}
	if len(bundle.Interests) != 2 {
		return "Reference record conversion failed", fmt.Errorf("expected 2 interests, got %d", len(bundle.Interests))
	}
	return "Reference record converts to BODS", nil
}

// GTG returns a 503 if the healthcheck fails
func (h *TransformerHandler) GTG() gtg.Status {
	statusCheck := func() gtg.Status {
		return gtgCheck(h.Checker)
	}
	return gtg.FailFastParallelCheck([]gtg.StatusChecker{statusCheck})()
}

// GoodToGo serves GTG over HTTP for varnish and the cluster router
func (h *TransformerHandler) GoodToGo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	status := h.GTG()
	if !status.GoodToGo {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, status.Message)
		return
	}
	fmt.Fprint(w, "OK")
}

func gtgCheck(handler func() (string, error)) gtg.Status {
	if _, err := handler(); err != nil {
		return gtg.Status{GoodToGo: false, Message: err.Error()}
	}
	return gtg.Status{GoodToGo: true}
}

// ConvertSignificantIndividual converts one record posted as JSON
func (h *TransformerHandler) ConvertSignificantIndividual(w http.ResponseWriter, r *http.Request) {
	transID := transactionidutils.GetTransactionIDFromRequest(r)
	w.Header().Set(transactionidutils.TransactionIDHeader, transID)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	var record si.SignificantIndividual
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		logger.WithTransactionID(transID).WithError(err).Error("failed to decode significant individual")
		writeMessage(w, http.StatusBadRequest, "request body is not a valid significant individual")
		return
	}

	bundle, err := h.service.Convert(record)
	if err != nil {
		logger.WithTransactionID(transID).WithError(err).Error("failed to convert significant individual")
		writeMessage(w, statusFor(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bundle); err != nil {
		logger.WithTransactionID(transID).WithError(err).Error("failed to encode BODS bundle")
	}
}

// ConvertSignificantIndividuals converts a JSON array of records; failures are reported per record
func (h *TransformerHandler) ConvertSignificantIndividuals(w http.ResponseWriter, r *http.Request) {
	transID := transactionidutils.GetTransactionIDFromRequest(r)
	w.Header().Set(transactionidutils.TransactionIDHeader, transID)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	var records []si.SignificantIndividual
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		logger.WithTransactionID(transID).WithError(err).Error("failed to decode significant individuals")
		writeMessage(w, http.StatusBadRequest, "request body is not a list of significant individuals")
		return
	}

	results := h.service.ConvertAll(r.Context(), records)
	items := make([]batchItem, len(results))
	failed := 0
	for i, res := range results {
		items[i] = batchItem{Index: res.Index, Bundle: res.Bundle}
		if res.Err != nil {
			items[i].Message = res.Err.Error()
			failed++
		}
	}
	logger.WithTransactionID(transID).Infof("converted %d significant individuals, %d failed", len(results)-failed, failed)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(items); err != nil {
		logger.WithTransactionID(transID).WithError(err).Error("failed to encode BODS bundles")
	}
}

func statusFor(err error) int {
	var domainErr *bods.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest
	}
	var parseErr *bods.ParseError
	var rangeErr *bods.RangeError
	if errors.As(err, &parseErr) || errors.As(err, &rangeErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	body, _ := json.Marshal(map[string]string{"message": msg})
	w.Write(body)
}

var referenceRecord = si.SignificantIndividual{
	Profile: si.Profile{
		FullName: "Reference Individual",
		Address: si.Address{
			Line1:      "1 Reference Way",
			City:       "Victoria",
			Region:     "BC",
			PostalCode: "V8W 1A1",
			Country:    si.Country{Name: "Canada", Alpha2: "CA"},
		},
		CitizenshipCA: si.Citizen,
	},
	ControlType: si.ControlType{
		Directors:   si.DirectorsControl{DirectControl: true},
		SharesVotes: si.SharesVotesControl{RegisteredOwner: true},
	},
	PercentOfShares: "50",
	StartDate:       "2020-01-01",
}
