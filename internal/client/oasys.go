package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/caseflow/intake_service/internal/httputil"
)

// OasysRoshQuestion is one answered question from the OASys risk of serious
// harm (RoSH) section.
type OasysRoshQuestion struct {
	Label          string
	QuestionNumber string
	Answer         string
}

// OasysRiskOfSeriousHarm is the RoSH assessment fetched for a person.
type OasysRiskOfSeriousHarm struct {
	DateStarted   string
	DateCompleted string
	Rosh          []OasysRoshQuestion
}

// Empty reports whether no assessment data came back.
func (o OasysRiskOfSeriousHarm) Empty() bool {
	return o.DateStarted == "" && o.DateCompleted == "" && len(o.Rosh) == 0
}

// OasysClient fetches risk assessment data from the OASys service.
type OasysClient struct {
	rest *httputil.Client
}

// NewOasysClient creates an OASys client.
func NewOasysClient(rest *httputil.Client) *OasysClient {
	return &OasysClient{rest: rest}
}

// RiskOfSeriousHarm fetches the RoSH section for the person identified by
// crn. A missing assessment surfaces as *Error with status 404 so callers
// can fall back to a "no record" state; every other failure propagates.
func (c *OasysClient) RiskOfSeriousHarm(ctx context.Context, token, crn string) (OasysRiskOfSeriousHarm, error) {
	resp, err := c.rest.Get(ctx, token, "/people/"+crn+"/oasys/rosh")
	if err != nil {
		return OasysRiskOfSeriousHarm{}, fmt.Errorf("fetch oasys rosh: %w", err)
	}
	defer resp.Body.Close()

	body, truncated, err := httputil.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return OasysRiskOfSeriousHarm{}, fmt.Errorf("read oasys response: %w", err)
	}
	if truncated {
		return OasysRiskOfSeriousHarm{}, fmt.Errorf("oasys response exceeded %d bytes", maxResponseBytes)
	}
	if resp.StatusCode >= 400 {
		return OasysRiskOfSeriousHarm{}, &Error{Status: resp.StatusCode, Data: strings.TrimSpace(string(body))}
	}

	return parseRosh(body), nil
}

// parseRosh pulls the fields the wizard needs out of the OASys payload. The
// upstream document carries far more than we consume, so targeted gjson
// lookups beat a full struct decode.
func parseRosh(body []byte) OasysRiskOfSeriousHarm {
	doc := gjson.ParseBytes(body)

	out := OasysRiskOfSeriousHarm{
		DateStarted:   doc.Get("dateStarted").String(),
		DateCompleted: doc.Get("dateCompleted").String(),
	}
	doc.Get("rosh").ForEach(func(_, q gjson.Result) bool {
		out.Rosh = append(out.Rosh, OasysRoshQuestion{
			Label:          q.Get("label").String(),
			QuestionNumber: q.Get("questionNumber").String(),
			Answer:         q.Get("answer").String(),
		})
		return true
	})
	return out
}
