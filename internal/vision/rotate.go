package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// ParseRotationAngle extracts the rotation angle from the orientation engine's
// line-oriented report. The angle is taken from the first line containing
// "Rotate", from the substring after the first colon, trimmed and parsed as an
// integer.
func ParseRotationAngle(osd string) (int, error) {
	for _, line := range strings.Split(osd, "\n") {
		if !strings.Contains(line, "Rotate") {
			continue
		}
		_, after, found := strings.Cut(line, ":")
		if !found {
			return 0, fmt.Errorf("malformed orientation line: %q", line)
		}
		angle, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return 0, fmt.Errorf("parse rotation angle: %w", err)
		}
		return angle, nil
	}
	return 0, fmt.Errorf("no rotation line in orientation output")
}

// CorrectRotation un-rotates img by the angle the orientation engine reports,
// expanding the canvas so no content is cropped. Detection is best effort:
// any engine or parse failure returns the original image untouched, as does a
// reported angle of zero. Callers may rely on reference equality to detect an
// untouched image.
func (e *Engine) CorrectRotation(img image.Image) image.Image {
	osd, err := e.osd(img)
	if err != nil {
		return img
	}
	angle, err := ParseRotationAngle(osd)
	if err != nil || angle == 0 {
		return img
	}
	return imaging.Rotate(img, float64(angle), color.Black)
}

// detectOrientation runs the tesseract binary in OSD mode over a temporary
// copy of the image and returns its report.
func (e *Engine) detectOrientation(img image.Image) (string, error) {
	path, err := saveTempPNG(img, "osd")
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	cmd := exec.Command(e.tesseract, path, "stdout", "--psm", "0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("orientation detection: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
