package analysis_service

import (
	"sync"
	"time"
)

// 风险等级标签
const (
	RiskHigh   = "高风险"
	RiskMedium = "中等风险"
	RiskLow    = "低风险"
)

// Settings 分析设置，阈值单位为百分比
type Settings struct {
	HighViolationThreshold   float64 `json:"high_violation_threshold" yaml:"high_violation_threshold"`
	MediumViolationThreshold float64 `json:"medium_violation_threshold" yaml:"medium_violation_threshold"`
	HighlightViolations      bool    `json:"highlight_violations" yaml:"highlight_violations"`
	ShowCharts               bool    `json:"show_charts" yaml:"show_charts"`
	ShowRawData              bool    `json:"show_raw_data" yaml:"show_raw_data"`
	ShowDetailedAnalysis     bool    `json:"show_detailed_analysis" yaml:"show_detailed_analysis"`
}

// DefaultSettings 默认分析设置
func DefaultSettings() Settings {
	return Settings{
		HighViolationThreshold:   20,
		MediumViolationThreshold: 10,
		HighlightViolations:      true,
		ShowCharts:               true,
		ShowRawData:              false,
		ShowDetailedAnalysis:     true,
	}
}

// RiskLevel 按违规率给出风险等级，rate 是0到1之间的比率
func (s Settings) RiskLevel(rate float64) string {
	percent := rate * 100
	switch {
	case percent >= s.HighViolationThreshold:
		return RiskHigh
	case percent >= s.MediumViolationThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DatasetMeta 当前数据集的来源信息
type DatasetMeta struct {
	FileName string    `json:"file_name"`
	Source   string    `json:"source"`
	RowCount int       `json:"row_count"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}

// DatasetStore 持有当前加载的数据集和分析设置，服务内共享一份
type DatasetStore struct {
	mu       sync.RWMutex
	dataset  *Dataset
	meta     DatasetMeta
	settings Settings
}

func NewDatasetStore() *DatasetStore {
	return &DatasetStore{settings: DefaultSettings()}
}

// SetDataset 替换当前数据集，source 标识来源（上传或本地文件）
func (st *DatasetStore) SetDataset(ds *Dataset, fileName, source string) DatasetMeta {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.dataset = ds
	st.meta = DatasetMeta{
		FileName: fileName,
		Source:   source,
		RowCount: ds.Len(),
		Columns:  ds.Columns(),
		LoadedAt: time.Now(),
	}
	return st.meta
}

// Dataset 返回当前数据集，未加载时ok为false
func (st *DatasetStore) Dataset() (*Dataset, DatasetMeta, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.dataset == nil {
		return nil, DatasetMeta{}, false
	}
	return st.dataset, st.meta, true
}

// Clear 清除当前数据集
func (st *DatasetStore) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.dataset = nil
	st.meta = DatasetMeta{}
}

// Settings 返回当前分析设置
func (st *DatasetStore) Settings() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// UpdateSettings 整体替换分析设置
func (st *DatasetStore) UpdateSettings(s Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.settings = s
}
