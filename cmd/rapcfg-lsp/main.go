package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"rapcfg/internal/lsp"
)

const lsName = "rapcfg"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	// 1 = debug level, nil = default backend.
	commonlog.Configure(1, nil)

	cfgHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     cfgHandler.Initialize,
		Initialized:                    cfgHandler.Initialized,
		Shutdown:                       cfgHandler.Shutdown,
		SetTrace:                       cfgHandler.SetTrace,
		TextDocumentDidOpen:            cfgHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           cfgHandler.TextDocumentDidClose,
		TextDocumentDidChange:          cfgHandler.TextDocumentDidChange,
		TextDocumentCompletion:         cfgHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: cfgHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting %s LSP server %s...", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting rapcfg LSP server:", err)
		os.Exit(1)
	}
}
