package runtime

import "strings"

// ParseBindSpec decodes the daemon's colon-delimited bind string form
// ("source:destination[:mode]") into a Mount. The mode segment defaults
// to read-write. Sources beginning with a path separator are bind
// mounts; everything else refers to a named volume.
func ParseBindSpec(spec string) (Mount, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return Mount{}, &MountError{Spec: spec, Reason: "expected source:destination[:mode]"}
	}
	if parts[0] == "" || parts[1] == "" {
		return Mount{}, &MountError{Spec: spec, Reason: "empty source or destination"}
	}

	m := Mount{
		Source:      parts[0],
		Destination: parts[1],
		Mode:        ModeReadWrite,
		Kind:        MountKindVolume,
	}
	if strings.HasPrefix(parts[0], "/") {
		m.Kind = MountKindBind
	}

	if len(parts) >= 3 {
		switch parts[2] {
		case string(ModeReadOnly):
			m.Mode = ModeReadOnly
		case string(ModeReadWrite), "":
			m.Mode = ModeReadWrite
		default:
			return Mount{}, &MountError{Spec: spec, Reason: "unknown mode " + parts[2]}
		}
	}
	return m, nil
}

// BindSpec is the inverse of ParseBindSpec. The mode segment is omitted
// when the mode is the read-write default.
func (m Mount) BindSpec() string {
	s := m.Source + ":" + m.Destination
	if m.Mode != "" && m.Mode != ModeReadWrite {
		s += ":" + string(m.Mode)
	}
	return s
}

// HasMountConflict reports whether the candidate's source is already
// present in the existing mount set. Attaching an already-attached
// volume is rejected, not silently ignored.
func HasMountConflict(existing []Mount, candidate Mount) bool {
	for _, m := range existing {
		if m.Source == candidate.Source {
			return true
		}
	}
	return false
}
