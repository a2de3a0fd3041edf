package main

import (
	"fmt"
	"strings"
)

// logMetrics logs the client metrics collected during the run at debug level.
func (cli *commandLine) logMetrics() {
	if cli.registry == nil {
		return
	}
	families, err := cli.registry.Gather()
	if err != nil {
		cli.logger.Warn("[metrics] gathering client metrics", err)
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := fmt.Sprintf("%s{%s}", mf.GetName(), strings.Join(labels, ","))

			switch {
			case m.GetCounter() != nil:
				cli.logger.Debug(fmt.Sprintf("[metrics] %s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				cli.logger.Debug(fmt.Sprintf("[metrics] %s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
}
