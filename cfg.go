package main

import (
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/config"
)

func Load(path string) (*config.Scene, error) {
	file, err := ebitenutil.OpenFile(path)
	if err != nil {
		log.Printf("failed opening file: %s", err)
		return nil, err
	}
	defer file.Close()
	return config.Read(file)
}
