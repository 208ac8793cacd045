// Package trials queries the public ClinicalTrials.gov v2 API for the
// trauma-recovery resources page.
package trials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL   = "https://clinicaltrials.gov/api/v2"
	DefaultCondition = "Post-Traumatic Stress Disorder"
	DefaultPageSize  = 20
	MaxPageSize      = 100

	studyURLPrefix = "https://clinicaltrials.gov/study/"
)

var ErrUpstream = errors.New("clinical trials upstream error")

type Query struct {
	Condition string
	Term      string
	Status    []string // e.g. RECRUITING, NOT_YET_RECRUITING
	PageSize  int
	PageToken string
}

// Normalize fills defaults and caps the page size.
func (q Query) Normalize() Query {
	q.Condition = strings.TrimSpace(q.Condition)
	q.Term = strings.TrimSpace(q.Term)
	if q.Condition == "" && q.Term == "" {
		q.Condition = DefaultCondition
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	return q
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("format", "json")
	if q.Condition != "" {
		v.Set("query.cond", q.Condition)
	}
	if q.Term != "" {
		v.Set("query.term", q.Term)
	}
	if len(q.Status) > 0 {
		v.Set("filter.overallStatus", strings.Join(q.Status, ","))
	}
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.PageToken != "" {
		v.Set("pageToken", q.PageToken)
	}
	return v
}

type Study struct {
	NCTID      string   `json:"nct_id"`
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Conditions []string `json:"conditions"`
	URL        string   `json:"url"`
}

type Page struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

type Client struct {
	base  string
	http  *http.Client
	group singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// Search runs one page of a study search. Identical concurrent searches share
// a single upstream request. The shared request outlives any one caller and is
// bounded by the client timeout; each caller stops waiting when its own ctx ends.
func (c *Client) Search(ctx context.Context, q Query) (Page, error) {
	q = q.Normalize()
	u := c.base + "/studies?" + q.values().Encode()
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(u, func() (any, error) {
		return c.fetch(shared, u)
	})
	select {
	case <-ctx.Done():
		return Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Page{}, res.Err
		}
		return res.Val.(Page), nil
	}
}

func (c *Client) fetch(ctx context.Context, u string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Page{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return raw.page(), nil
}

// apiResponse is the subset of the v2 study payload we render.
type apiResponse struct {
	Studies []struct {
		ProtocolSection struct {
			IdentificationModule struct {
				NCTID         string `json:"nctId"`
				BriefTitle    string `json:"briefTitle"`
				OfficialTitle string `json:"officialTitle"`
			} `json:"identificationModule"`
			StatusModule struct {
				OverallStatus string `json:"overallStatus"`
			} `json:"statusModule"`
			ConditionsModule struct {
				Conditions []string `json:"conditions"`
			} `json:"conditionsModule"`
		} `json:"protocolSection"`
	} `json:"studies"`
	NextPageToken string `json:"nextPageToken"`
}

func (r apiResponse) page() Page {
	p := Page{Studies: make([]Study, 0, len(r.Studies)), NextPageToken: r.NextPageToken}
	for _, s := range r.Studies {
		id := s.ProtocolSection.IdentificationModule
		title := id.BriefTitle
		if title == "" {
			title = id.OfficialTitle
		}
		conds := s.ProtocolSection.ConditionsModule.Conditions
		if conds == nil {
			conds = []string{}
		}
		st := Study{
			NCTID:      id.NCTID,
			Title:      title,
			Status:     s.ProtocolSection.StatusModule.OverallStatus,
			Conditions: conds,
		}
		if id.NCTID != "" {
			st.URL = studyURLPrefix + id.NCTID
		}
		p.Studies = append(p.Studies, st)
	}
	return p
}
