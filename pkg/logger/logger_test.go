package logger_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Saibalraj/Number-Guessing-Game/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			logger.Get().Info(ctx, "round started", logger.String("level", "EASY"), logger.Int("limit", 15))

			Convey("Then the output carries message and fields", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "round started")
				So(out, ShouldContainSubstring, "level=EASY")
				So(out, ShouldContainSubstring, "limit=15")
			})
		})

		Convey("When the level is raised to error", func() {
			So(logger.SetLevelString("error"), ShouldBeNil)
			logger.Get().Info(ctx, "should be suppressed")

			Convey("Then info output is dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "should be suppressed")
			})
		})

		Convey("When parsing an unknown level string", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("When using a named logger", func() {
			logger.Named("engine").Warn(ctx, "low time", logger.Int("remaining", 3))

			Convey("Then the group name prefixes the fields", func() {
				So(buf.String(), ShouldContainSubstring, "engine.remaining=3")
			})
		})
	})
}
