package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/eisbock/stockaid/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
