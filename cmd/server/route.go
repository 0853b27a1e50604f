package main

import (
	"github.com/matryer/way"
	"github.com/zucenko/tweenseq/server"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", server.URI_SEQUENCES, s.PreviewServer.HandleList())
	s.router.HandleFunc("GET", server.URI_PLAY, s.PreviewServer.HandlePlay())
}
