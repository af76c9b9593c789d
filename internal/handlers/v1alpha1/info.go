package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	modes := make([]string, 0, len(estimation.Modes))
	for _, m := range estimation.Modes {
		modes = append(modes, string(m))
	}

	render.JSON(w, r, api.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
		Modes:       modes,
	})
}
