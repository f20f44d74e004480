package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"

	"agoranet.io/agora/lib/common"
)

const (
	UrlPrefixForAPIV1 = "/v1"

	UrlInitiatives             = "/initiatives"
	UrlInitiative              = "/initiatives/{id}"
	UrlInitiativeSignals       = "/initiatives/{id}/signals"
	UrlInitiativeTerminate     = "/initiatives/{id}/terminate"
	UrlInitiativeParticipation = "/initiatives/{id}/participations/{address}"
	UrlLedger                  = "/ledger"
	UrlLedgerStandardSpan      = "/ledger/standard-span"
	UrlSubscribe               = "/subscribe"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	urlValues := neturl.Values{}
	if len(qs) == 0 {
		return ""
	}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit:
			urlValues.Add(QueryLimit.String(), q.Value)
		case QueryReverse:
			urlValues.Add(QueryReverse.String(), q.Value)
		case QueryCursor:
			urlValues.Add(QueryCursor.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewHTTP2Client(0, 0, true)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  url,
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		err = decoder.Decode(&p)
		if err != nil {
			return
		}
		return Error{Problem: p}
	}

	err = decoder.Decode(&response)
	if err != nil {
		return
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) Put(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Put(url, body, headers)
}

func replaceID(url string, id uint64) string {
	return strings.Replace(url, "{id}", strconv.FormatUint(id, 10), -1)
}

func jsonHeaders() http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	return headers
}

func (c *Client) LoadInitiative(id uint64, queries ...Q) (initiative Initiative, err error) {
	url := replaceID(UrlInitiative, id)
	url += Queries(queries).toQueryString()
	resp, err := c.Get(url, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &initiative)
	return
}

func (c *Client) LoadInitiatives(queries ...Q) (iPage InitiativesPage, err error) {
	url := UrlInitiatives
	url += Queries(queries).toQueryString()
	resp, err := c.Get(url, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &iPage)
	return
}

func (c *Client) LoadParticipation(id uint64, address string) (participation Participation, err error) {
	url := strings.Replace(replaceID(UrlInitiativeParticipation, id), "{address}", address, -1)
	resp, err := c.Get(url, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &participation)
	return
}

func (c *Client) LoadLedger() (chronicle Chronicle, err error) {
	resp, err := c.Get(UrlLedger, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &chronicle)
	return
}

// SubmitProposal posts a signed proposal message; the body is the serialized
// `governance.Proposal`.
func (c *Client) SubmitProposal(body []byte) (initiative Initiative, err error) {
	resp, err := c.Post(UrlInitiatives, body, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &initiative)
	return
}

func (c *Client) SubmitSignal(id uint64, body []byte) (participation Participation, err error) {
	resp, err := c.Post(replaceID(UrlInitiativeSignals, id), body, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &participation)
	return
}

func (c *Client) SubmitTermination(id uint64, body []byte) (initiative Initiative, err error) {
	resp, err := c.Post(replaceID(UrlInitiativeTerminate, id), body, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &initiative)
	return
}

func (c *Client) SubmitSpanUpdate(body []byte) (chronicle Chronicle, err error) {
	resp, err := c.Put(UrlLedgerStandardSpan, body, jsonHeaders())
	if err != nil {
		return
	}
	err = c.toResponse(resp, &chronicle)
	return
}

// Stream subscribes to the named ledger events and feeds every received
// line to the handler until the context is done.
func (c *Client) Stream(ctx context.Context, events []string, handler func(data []byte) error) (err error) {
	body, err := json.Marshal(events)
	if err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "text/event-stream")
	resp, err := c.Post(UrlSubscribe, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return err
		}

		if len(line) == 0 {
			continue
		}
		if err := handler(line); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (c *Client) StreamInitiatives(ctx context.Context, handler func(Initiative)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Initiative
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, []string{"initiative-saved"}, handlerFunc)
}

func (c *Client) StreamSignals(ctx context.Context, handler func(Participation)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Participation
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, []string{"signaled"}, handlerFunc)
}
