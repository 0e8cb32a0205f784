package analysis_service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// 数据集来源
const (
	SourceUpload = "upload"
	SourceLocal  = "local"
)

var ErrNoDataset = errors.New("尚未加载数据集，请先上传数据文件")

// LocalFileInfo 本地数据目录中可选择的文件
type LocalFileInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// AnalysisService 分析服务，持有数据集和设置
type AnalysisService struct {
	Store *DatasetStore
}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{Store: NewDatasetStore()}
}

// LoadFromReader 从上传流加载数据集
func (s *AnalysisService) LoadFromReader(r io.Reader, fileName, source string) (DatasetMeta, error) {
	ds, err := LoadCSV(r)
	if err != nil {
		return DatasetMeta{}, err
	}
	return s.Store.SetDataset(ds, fileName, source), nil
}

// ListLocalFiles 列出本地数据目录中的CSV文件，按修改时间倒序
func (s *AnalysisService) ListLocalFiles(dir string) ([]LocalFileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []LocalFileInfo{}, nil
		}
		return nil, fmt.Errorf("读取数据目录失败: %w", err)
	}

	var files []LocalFileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, LocalFileInfo{
			Name:       entry.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

// LoadLocalFile 从本地数据目录加载文件，文件名不允许带路径
func (s *AnalysisService) LoadLocalFile(dir, name string) (DatasetMeta, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return DatasetMeta{}, fmt.Errorf("非法的文件名: %s", name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return DatasetMeta{}, fmt.Errorf("仅支持CSV文件")
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return DatasetMeta{}, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	return s.LoadFromReader(f, name, SourceLocal)
}

// Complete 对当前数据集执行完整分析
func (s *AnalysisService) Complete() (*CompleteReport, *Dataset, error) {
	ds, _, ok := s.Store.Dataset()
	if !ok {
		return nil, nil, ErrNoDataset
	}
	report, err := AnalyzeComplete(ds)
	if err != nil {
		return nil, nil, err
	}
	return report, ds, nil
}

// Statistics 对当前数据集执行时间窗口违规率统计
func (s *AnalysisService) Statistics(win Window) (*StatisticsReport, error) {
	ds, _, ok := s.Store.Dataset()
	if !ok {
		return nil, ErrNoDataset
	}
	return AnalyzeStatistics(ds, win)
}
