package creative_test

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/mock"
)

const usableProfileJSON = `{
	"productName": "Curso de Marketing",
	"targetAudience": "Pequenos empreendedores",
	"mainPain": "Falta de clientes",
	"mainBenefit": "economize tempo",
	"centralPromise": "Vendas todos os dias",
	"communicationTone": "informal",
	"niche": "Educação"
}`

var usableProfile = &forgeads.ProductProfile{
	ProductName:       "Curso de Marketing",
	TargetAudience:    "Pequenos empreendedores",
	MainPain:          "Falta de clientes",
	MainBenefit:       "economize tempo",
	CentralPromise:    "Vendas todos os dias",
	CommunicationTone: "informal",
	Niche:             "Educação",
}

// requestKind reports which operation built req.
func requestKind(req *forgeads.GenerateRequest) string {
	if req.Schema != nil {
		return "analysis"
	}
	user := req.Messages[len(req.Messages)-1].Content
	switch {
	case strings.Contains(user, "TIPO DE COPY: headline"):
		return "headline"
	case strings.Contains(user, "TIPO DE COPY: body"):
		return "body"
	case strings.Contains(user, "TIPO DE COPY: cta"):
		return "cta"
	case strings.Contains(user, "diretor de arte"):
		return "briefing"
	case strings.Contains(user, "HEADLINE:"):
		return "ad"
	}
	return "unknown"
}

// recorder is a text generator answering each operation with canned
// responses and counting calls per operation.
type recorder struct {
	profile string
	fail    map[string]error

	calls    atomic.Int32
	kinds    chan string
	requests chan *forgeads.GenerateRequest
}

func newRecorder(profile string) *recorder {
	return &recorder{
		profile:  profile,
		fail:     map[string]error{},
		kinds:    make(chan string, 16),
		requests: make(chan *forgeads.GenerateRequest, 16),
	}
}

func (r *recorder) generator() *mock.TextGenerator {
	return &mock.TextGenerator{
		GenerateFn: func(_ context.Context, req *forgeads.GenerateRequest) (string, error) {
			r.calls.Add(1)
			kind := requestKind(req)
			r.kinds <- kind
			r.requests <- req
			if err := r.fail[kind]; err != nil {
				return "", err
			}
			switch kind {
			case "analysis":
				return r.profile, nil
			case "headline":
				return "  Venda todo dia  \n", nil
			case "body":
				return "Texto do anúncio com o benefício real.", nil
			case "cta":
				return "Quero vender", nil
			case "briefing":
				return "Foto realista de empreendedor sorrindo com notebook", nil
			}
			return "", forgeads.Errorf(forgeads.EUPSTREAM, "unexpected request")
		},
	}
}

// seen drains the recorded operation kinds.
func (r *recorder) seen() []string {
	var kinds []string
	for {
		select {
		case k := <-r.kinds:
			kinds = append(kinds, k)
		default:
			return kinds
		}
	}
}

func noCalls() *mock.TextGenerator {
	return &mock.TextGenerator{
		GenerateFn: func(context.Context, *forgeads.GenerateRequest) (string, error) {
			panic("unexpected generator call")
		},
	}
}
