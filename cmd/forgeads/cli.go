package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/gemini"
	"github.com/forgeads/forgeads/poppler"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Format    string
	Creatives forgeads.CreativeService
	Products  forgeads.ProductService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log pipeline stages and upstream calls to stderr"`
	Format  string `enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`

	DB         string        `env:"FORGEADS_DB" help:"History database path (default ~/.forgeads/forgeads.db)"`
	APIKey     string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model      string        `env:"FORGEADS_MODEL" default:"${model}" help:"Text generation model"`
	ImageModel string        `name:"image-model" env:"FORGEADS_IMAGE_MODEL" default:"${image_model}" help:"Image generation model"`
	PDFToText  string        `name:"pdftotext" env:"FORGEADS_PDFTOTEXT" default:"${pdftotext}" help:"Path to the pdftotext binary"`
	Timeout    time.Duration `default:"15s" help:"Page fetch timeout (HTTP and browser)"`
	Browser    bool          `help:"Render pages in a headless browser before extraction"`
	Retries    uint64        `default:"3" help:"Retries for transient model failures (0 disables)"`
	RPS        float64       `name:"rps" default:"0" help:"Model requests per second (0 is unlimited)"`
	FetchRPS   float64       `name:"fetch-rps" default:"1" help:"Page requests per second per host (0 is unlimited)"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze a landing page or product document"`
	Copy    CopyCmd    `cmd:"" help:"Write an ad from niche and audience"`
	Image   ImageCmd   `cmd:"" help:"Generate an ad image"`
	History HistoryCmd `cmd:"" help:"Manage saved analyses"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL       string `arg:"" optional:"" help:"Landing page URL"`
	File      string `short:"f" help:"Product document (PDF or text) to analyze instead of a URL"`
	Objective string `short:"o" enum:"Vendas,Leads,WhatsApp" default:"Vendas" help:"Campaign objective (Vendas, Leads, WhatsApp)"`
	NoSave    bool   `name:"no-save" help:"Do not save the analysis to history"`
}

// CopyCmd is the "copy" subcommand.
type CopyCmd struct {
	Niche     string `name:"nicho" required:"" help:"Product niche"`
	Audience  string `name:"publico" required:"" help:"Target audience"`
	Objective string `name:"objetivo" default:"Vendas" help:"Campaign objective (Vendas, Leads, WhatsApp)"`
	Awareness string `name:"consciencia" default:"Frio" help:"Audience awareness (Frio, Morno, Quente)"`
	Tone      string `name:"tom" default:"Emocional" help:"Communication tone"`
}

// ImageCmd is the "image" subcommand.
type ImageCmd struct {
	Niche     string `name:"nicho" required:"" help:"Product niche"`
	Audience  string `name:"publico" required:"" help:"Target audience"`
	Objective string `name:"objetivo" default:"Vendas" help:"Campaign objective (Vendas, Leads, WhatsApp)"`
	Tone      string `name:"tom" default:"Emocional" help:"Communication tone"`
	Headline  string `required:"" help:"Ad headline the image is built around"`
	Output    string `short:"O" type:"path" help:"Write the decoded image to this file instead of printing the data URL"`
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" help:"List saved analyses, newest first"`
	Show   HistoryShowCmd   `cmd:"" help:"Show a saved analysis"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a saved analysis"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL    string `name:"url" help:"Only analyses of this source URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of analyses"`
	Offset int    `help:"Number of analyses to skip"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID string `arg:"" help:"Analysis ID"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID    string `arg:"" help:"Analysis ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"FORGEADS_ADDR" help:"Listen address"`
}

// Vars returns the variables interpolated into flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"model":       gemini.DefaultModel,
		"image_model": gemini.DefaultImageModel,
		"pdftotext":   poppler.DefaultPath,
	}
}
