package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SecureJoin 将相对路径拼接到 basePath 下并返回绝对路径。
// 拒绝绝对路径与 ".." 越界，且 base 到目标之间已存在的节点都不能是符号链接。
func SecureJoin(basePath, relativePath string) (string, error) {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if cleanRel == "." {
		cleanRel = ""
	}
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(relativePath, "/") {
		return "", fmt.Errorf("非法路径: 不允许绝对路径")
	}

	targetAbs := filepath.Join(baseAbs, cleanRel)
	if err := EnsureNoSymlinkBetween(baseAbs, targetAbs); err != nil {
		return "", err
	}
	return targetAbs, nil
}

// EnsureNoSymlinkBetween 从 targetPath 逐级回溯到 basePath，检查链路上的符号链接。
// 不存在的节点不报错，便于在创建文件前调用。
func EnsureNoSymlinkBetween(basePath, targetPath string) error {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	if err := ensureWithinBase(baseAbs, targetAbs); err != nil {
		return err
	}

	for current := targetAbs; ; {
		info, statErr := os.Lstat(current)
		switch {
		case statErr == nil && info.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf("检测到符号链接穿透风险: %s", current)
		case statErr != nil && !os.IsNotExist(statErr):
			return fmt.Errorf("检查路径失败: %w", statErr)
		}

		if samePath(current, baseAbs) {
			return nil
		}
		parent := filepath.Dir(current)
		if samePath(parent, current) {
			return fmt.Errorf("非法路径: 无法定位到安全基目录")
		}
		current = parent
	}
}

func ensureWithinBase(baseAbs, targetAbs string) error {
	baseVol := filepath.VolumeName(baseAbs)
	targetVol := filepath.VolumeName(targetAbs)
	if (baseVol != "" || targetVol != "") && !strings.EqualFold(baseVol, targetVol) {
		return fmt.Errorf("非法路径: 路径跨磁盘卷")
	}

	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return fmt.Errorf("非法路径: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("非法路径: 目标超出基目录")
	}
	return nil
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
