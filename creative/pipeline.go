package creative

import (
	"context"

	"github.com/forgeads/forgeads"
)

// Stage is a state of one pipeline run.
type Stage int

// Pipeline stages, in order. A run ends in StageComplete or in one of
// the rejection stages.
const (
	StageReceived Stage = iota
	StageExtracting
	StageExtracted
	StageAnalyzing
	StageAnalyzed
	StageGeneratingCopy
	StageGeneratingBriefing
	StageComplete

	StageRejectedInsufficientSource
	StageRejectedInsufficientAnalysis
	StageFailed
)

var stageNames = map[Stage]string{
	StageReceived:                     "received",
	StageExtracting:                   "extracting",
	StageExtracted:                    "extracted",
	StageAnalyzing:                    "analyzing",
	StageAnalyzed:                     "analyzed",
	StageGeneratingCopy:               "generating_copy",
	StageGeneratingBriefing:           "generating_briefing",
	StageComplete:                     "complete",
	StageRejectedInsufficientSource:   "rejected_insufficient_source",
	StageRejectedInsufficientAnalysis: "rejected_insufficient_analysis",
	StageFailed:                       "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// StageFunc observes stage transitions.
type StageFunc func(Stage)

// Pipeline runs extract, gate, analyze, gate, copy and briefing for one
// source. It never retries; wrap collaborators to add retries.
type Pipeline struct {
	Fetcher   forgeads.Fetcher
	Pages     forgeads.PageExtractor
	Documents *DocumentExtractor
	Analyzer  *Analyzer
	Copy      *CopyWriter
	Briefer   *Briefer

	// OnStage, if set, is called on every stage transition.
	OnStage StageFunc
}

// Run processes src. A result is returned only when every stage
// completed; any failure terminates the run without partial output.
func (p *Pipeline) Run(ctx context.Context, src *forgeads.Source) (*forgeads.AnalysisResult, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	sourceType := src.Type()

	p.enter(StageReceived)
	p.enter(StageExtracting)
	content, err := p.extract(ctx, src)
	if err != nil {
		return nil, p.fail(err)
	}
	if !content.IsSufficient() {
		return nil, p.fail(forgeads.Errorf(forgeads.EINSUFFICIENT, "%s", insufficientSource(sourceType)))
	}
	p.enter(StageExtracted)

	p.enter(StageAnalyzing)
	profile, err := p.Analyzer.Analyze(ctx, sourceType, forgeads.AnalysisText(content))
	if err != nil {
		return nil, p.fail(err)
	}
	p.enter(StageAnalyzed)

	p.enter(StageGeneratingCopy)
	assets, err := p.Copy.WriteAll(ctx, profile, src.ObjectiveOrDefault())
	if err != nil {
		return nil, p.fail(err)
	}

	p.enter(StageGeneratingBriefing)
	briefing, err := p.Briefer.Brief(ctx, profile)
	if err != nil {
		return nil, p.fail(err)
	}

	p.enter(StageComplete)
	return &forgeads.AnalysisResult{
		ProductProfile: *profile,
		CopyAssets:     *assets,
		Briefing:       briefing,
		SourceType:     sourceType,
		SourceURL:      src.URL,
	}, nil
}

func (p *Pipeline) extract(ctx context.Context, src *forgeads.Source) (*forgeads.ExtractedContent, error) {
	if src.URL == "" {
		return p.Documents.ExtractDocument(ctx, src.Data, src.MIMEType)
	}

	html, err := p.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return p.Pages.ExtractPage(html, src.URL)
}

func (p *Pipeline) enter(s Stage) {
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

// fail records the terminal stage for err and returns err.
func (p *Pipeline) fail(err error) error {
	switch forgeads.ErrorCode(err) {
	case forgeads.EINSUFFICIENT:
		p.enter(StageRejectedInsufficientSource)
	case forgeads.EUNANALYZABLE:
		p.enter(StageRejectedInsufficientAnalysis)
	default:
		p.enter(StageFailed)
	}
	return err
}

func insufficientSource(sourceType forgeads.SourceType) string {
	switch sourceType {
	case forgeads.SourcePDF:
		return PDFTooShortMessage
	case forgeads.SourceFile:
		return "O arquivo não contém texto suficiente para análise. Envie um arquivo com mais informações sobre o produto."
	default:
		return "Conteúdo insuficiente extraído da página. Verifique se a URL está correta e acessível."
	}
}
