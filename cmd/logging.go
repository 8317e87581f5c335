package cmd

import (
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// progressLogger reports render progress at Debug roughly every 10%
func progressLogger() func(done, total int) {
	lastDecile := -1
	return func(done, total int) {
		decile := done * 10 / total
		if decile != lastDecile {
			lastDecile = decile
			logger.Debugf("progress %d/%d (%d%%)", done, total, done*100/total)
		}
	}
}
