package v1handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DomainList is the body of GET /domains.
type DomainList struct {
	Domains []string `json:"domains"`
}

// AddDomainRequest is the body of POST /domains.
type AddDomainRequest struct {
	Name string `json:"name"`
}

// Domain is a single monitored domain.
type Domain struct {
	Name string `json:"name"`
}

// KnownSubdomains is the body of GET /domains/{name}/subdomains.
type KnownSubdomains struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains"`
}

// ListDomains returns the monitored domains in insertion order.
func (h Handler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.deps.Monitor.ListDomains(r.Context())
	if err != nil {
		h.WriteError(w, r, err)

		return
	}
	if domains == nil {
		domains = []string{}
	}

	writeJSON(w, http.StatusOK, DomainList{Domains: domains})
}

// AddDomain starts monitoring a domain.
func (h Handler) AddDomain(w http.ResponseWriter, r *http.Request) {
	var req AddDomainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.WriteError(w, r, err)

		return
	}

	name, err := h.deps.Monitor.AddDomain(r.Context(), req.Name)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, Domain{Name: name})
}

// RemoveDomain stops monitoring a domain.
func (h Handler) RemoveDomain(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Monitor.RemoveDomain(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// KnownSubdomains returns the hostnames already reported for a domain.
func (h Handler) KnownSubdomains(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	known, err := h.deps.Monitor.KnownSubdomains(r.Context(), name)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}
	if known == nil {
		known = []string{}
	}

	writeJSON(w, http.StatusOK, KnownSubdomains{Domain: name, Subdomains: known})
}
