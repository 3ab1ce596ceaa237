package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store 上传文件存储抽象
// 删除级联（讲座删除时清理附件）依赖 Remove 的错误语义：
// 文件不存在返回 ErrNotExist，调用方按"已删除"处理。
type Store interface {
	Save(filename string, r io.Reader) error
	Remove(filename string) error
	Open(filename string) (io.ReadCloser, error)
}

// ErrNotExist 文件在存储中不存在
var ErrNotExist = os.ErrNotExist

// LocalStore 本地文件系统存储实现
type LocalStore struct {
	baseDir string
}

// NewLocalStore 创建本地存储，目录不存在时自动创建
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// path 拼接并约束到 baseDir 之内，防止路径穿越
func (s *LocalStore) path(filename string) (string, error) {
	clean := filepath.Clean(filename)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("非法的存储文件名: %q", filename)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *LocalStore) Save(filename string, r io.Reader) error {
	p, err := s.path(filename)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(filename string) error {
	p, err := s.path(filename)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *LocalStore) Open(filename string) (io.ReadCloser, error) {
	p, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}
