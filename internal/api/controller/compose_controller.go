package controller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bassista/dockhand/internal/logger"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const (
	composeProjectLabel    = "com.docker.compose.project"
	composeWorkingDirLabel = "com.docker.compose.project.working_dir"
	composeConfigLabel     = "com.docker.compose.project.config_files"
	composeServiceLabel    = "com.docker.compose.service"
)

// composeFile is the subset of a compose file this controller reads.
type composeFile struct {
	Services map[string]yaml.Node `yaml:"services"`
}

// ComposeController exposes the compose file a container was created
// from, when the compose labels and the file are present on this host.
type ComposeController struct {
	rt runtime.ContainerRuntime
}

func NewComposeController(rt runtime.ContainerRuntime) *ComposeController {
	return &ComposeController{rt: rt}
}

// ComposeDetails handles GET /containers/:name/compose.
func (cc *ComposeController) ComposeDetails(c *gin.Context) {
	name := c.Param("name")
	ins, err := cc.rt.Inspect(c.Request.Context(), name)
	if err != nil {
		handleRuntimeError(c, err)
		return
	}

	project, ok := ins.Labels[composeProjectLabel]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "container " + name + " was not created by compose"})
		return
	}

	path := composeFilePath(ins.Labels)
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "compose file location unknown for project " + project})
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.WithComponent("compose-controller").Warnf("compose file %s not readable: %v", path, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "compose file not found on this host", "path": path})
		return
	}

	var parsed composeFile
	services := []string{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		logger.WithComponent("compose-controller").Warnf("compose file %s is not valid yaml: %v", path, err)
	} else {
		for svc := range parsed.Services {
			services = append(services, svc)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  project,
		"service":  ins.Labels[composeServiceLabel],
		"path":     path,
		"services": services,
		"content":  string(raw),
	})
}

// composeFilePath resolves the compose file from the container labels.
// Compose writes config_files either absolute or relative to the
// project working dir; a missing config_files label falls back to the
// conventional name.
func composeFilePath(labels map[string]string) string {
	workingDir := labels[composeWorkingDirLabel]
	configFiles := labels[composeConfigLabel]

	if configFiles == "" {
		if workingDir == "" {
			return ""
		}
		return filepath.Join(workingDir, "docker-compose.yml")
	}

	// config_files may list several files; the first one is the primary.
	first := strings.Split(configFiles, ",")[0]
	if filepath.IsAbs(first) || workingDir == "" {
		return first
	}
	return filepath.Join(workingDir, first)
}
