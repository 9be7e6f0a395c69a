package handler

import (
	"github.com/sirupsen/logrus"

	"urlcheck/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
