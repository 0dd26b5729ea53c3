// Package metrics holds Prometheus collectors for the ingestion pipeline.
package metrics

import "github.com/goodnatureofminers/argus-backend/internal/model"

const namespace = "argus"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func chainLabels(chain model.Chain, network model.Network) (string, string) {
	if chain == "" {
		chain = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return string(chain), string(network)
}
