package domain

import (
	"fmt"
	"strings"
)

// DefaultCompanyContext substitutes for a blank company context so prompts
// never interpolate an empty section.
const DefaultCompanyContext = "Not provided"

// HiringRequest is the workflow's input: the two documents under
// evaluation, optional context, and the run's explicit configuration.
type HiringRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	Resume         string `json:"resume" validate:"required"`
	CompanyContext string `json:"company_context,omitempty"`
	CandidateName  string `json:"candidate_name,omitempty"`

	// Config is validated separately so configuration failures carry
	// ErrInvalidConfig rather than the request wrap.
	Config PanelConfig `json:"config" validate:"-"`
}

// NewHiringRequest creates a request with the default panel configuration.
func NewHiringRequest(jobDescription, resume, companyContext string) HiringRequest {
	return HiringRequest{
		JobDescription: jobDescription,
		Resume:         resume,
		CompanyContext: companyContext,
		Config:         DefaultPanelConfig(),
	}
}

// Validate rejects blank documents and invalid configuration before any
// remote call is made.
func (r *HiringRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return fmt.Errorf("%w: job description is blank", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Resume) == "" {
		return fmt.Errorf("%w: resume is blank", ErrInvalidRequest)
	}
	return r.Config.Validate()
}

// NormalizedCompanyContext returns the company context with the documented
// default substituted for blank input.
func (r *HiringRequest) NormalizedCompanyContext() string {
	if strings.TrimSpace(r.CompanyContext) == "" {
		return DefaultCompanyContext
	}
	return r.CompanyContext
}
