package server

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/config"
)

// LoadScene reads the scene file and checks that every sequence in it can be
// built, so a session never fails on a sequence the listing advertised.
func LoadScene(path string) (*config.Scene, error) {
	scene, err := config.Load(path)
	if err != nil {
		log.Printf("failed loading scene %s: %v", path, err)
		return nil, err
	}
	for i := range scene.Sequences {
		sc := &scene.Sequences[i]
		if _, err := sc.Build(nil); err != nil {
			return nil, fmt.Errorf("%w: sequence %q: %v", config.ErrInvalidConfig, sc.Name, err)
		}
		log.Debugf("scene %s: sequence %q with %d steps", path, sc.Name, len(sc.Steps))
	}
	log.Printf("scene %s loaded, %d sequences, %d effects", path, len(scene.Sequences), len(scene.Effects))
	return scene, nil
}
