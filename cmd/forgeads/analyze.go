package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgeads/forgeads"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	src, err := c.source()
	if err != nil {
		return fail(deps, err)
	}

	result, err := deps.Creatives.AnalyzeProduct(deps.Ctx, src)
	if err != nil {
		return fail(deps, err)
	}

	return encode(deps.Stdout, deps.Format, result)
}

// source builds the pipeline input from the URL argument or --file.
func (c *AnalyzeCmd) source() (*forgeads.Source, error) {
	src := &forgeads.Source{URL: c.URL, Objective: forgeads.Objective(c.Objective)}
	if c.File == "" {
		return src, nil
	} else if c.URL != "" {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Informe apenas uma URL ou um arquivo, não ambos.")
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, forgeads.Errorf(forgeads.EINVALID, "Não foi possível ler o arquivo: %s", filepath.Base(c.File))
	}
	src.Data = data
	src.FileName = filepath.Base(c.File)
	src.MIMEType = detectMIMEType(c.File, data)
	return src, nil
}

func detectMIMEType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md":
		return "text/plain"
	}
	return http.DetectContentType(data)
}
