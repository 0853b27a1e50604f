package main

import (
	"net/http"
	"os"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zucenko/tweenseq/server"
)

type Server struct {
	router        *way.Router
	PreviewServer *server.PreviewServer
}

var (
	flagPort    string
	flagScene   string
	flagTick    time.Duration
	flagDt      float32
	flagVerbose bool
)

func init() {
	rootCmd.Flags().StringVarP(&flagPort, "port", "p", "", "listen port (defaults to $PORT, then 8080)")
	rootCmd.Flags().StringVarP(&flagScene, "scene", "s", "scene.yaml", "scene file with the sequences to serve")
	rootCmd.Flags().DurationVar(&flagTick, "tick", 20*time.Millisecond, "wall time between two frames of a session")
	rootCmd.Flags().Float32Var(&flagDt, "dt", 0.02, "animation seconds one frame advances")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

var rootCmd = &cobra.Command{
	Use:          "tweenseq-server",
	Short:        "Stream sequence playback over websockets",
	Long:         "Serves the sequences of a scene file. GET /sequences lists them, GET /play/:name upgrades to a websocket streaming the playback.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
		scene, err := server.LoadScene(flagScene)
		if err != nil {
			return err
		}
		cfg := server.DefaultConfig()
		cfg.TickInterval = flagTick
		cfg.Dt = flagDt

		Server := Server{
			PreviewServer: server.NewPreviewServer(scene, cfg),
		}
		go Server.PreviewServer.Loop()
		Server.routes()

		port := flagPort
		if port == "" {
			port = os.Getenv("PORT")
		}
		if port == "" {
			port = "8080"
			log.Printf("Defaulting to port %s", port)
		}
		return http.ListenAndServe(":"+port, Server.router)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
