package admin

import (
	"errors"

	"project-analysis/config"
	"project-analysis/inout"
	pkgconfig "project-analysis/pkg/config"
	"project-analysis/pkg/monitoring"
	"project-analysis/pkg/response"
	"project-analysis/services/analysis_service"
	"project-analysis/utils"

	"github.com/gin-gonic/gin"
)

// UploadDataset 上传CSV数据文件并加载为当前数据集
func UploadDataset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		Resp.Err(c, response.INVALID_PARAMS, "获取上传文件失败: "+err.Error())
		return
	}

	maxSize := int64(pkgconfig.GetConfig().Data.MaxUploadSizeMB) << 20
	if file.Size > maxSize {
		Resp.Err(c, response.INVALID_PARAMS, "文件过大，超出上传限制")
		return
	}

	src, err := file.Open()
	if err != nil {
		Resp.Err(c, response.ERROR, "打开上传文件失败: "+err.Error())
		return
	}
	defer src.Close()

	meta, err := analysisService.LoadFromReader(src, file.Filename, analysis_service.SourceUpload)
	if err != nil {
		monitoring.RecordDatasetLoad(analysis_service.SourceUpload, "error")
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	monitoring.RecordDatasetLoad(analysis_service.SourceUpload, "success")
	monitoring.UpdateDatasetRows(meta.RowCount)
	Resp.Succ(c, datasetRep(meta))
}

// ListLocalFiles 列出本地数据目录中的CSV文件
func ListLocalFiles(c *gin.Context) {
	cfg := config.LoadConfig()
	files, err := analysisService.ListLocalFiles(cfg.Dir)
	if err != nil {
		Resp.Err(c, response.ERROR, err.Error())
		return
	}
	Resp.Succ(c, gin.H{"dir": cfg.Dir, "files": files})
}

// LoadLocalFile 从本地数据目录加载文件为当前数据集
func LoadLocalFile(c *gin.Context) {
	var params inout.LoadLocalFileReq
	if err := c.ShouldBind(&params); err != nil {
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	cfg := config.LoadConfig()
	meta, err := analysisService.LoadLocalFile(cfg.Dir, params.FileName)
	if err != nil {
		monitoring.RecordDatasetLoad(analysis_service.SourceLocal, "error")
		Resp.Err(c, response.INVALID_PARAMS, err.Error())
		return
	}

	monitoring.RecordDatasetLoad(analysis_service.SourceLocal, "success")
	monitoring.UpdateDatasetRows(meta.RowCount)
	Resp.Succ(c, datasetRep(meta))
}

// GetDataset 返回当前数据集信息
func GetDataset(c *gin.Context) {
	_, meta, ok := analysisService.Store.Dataset()
	if !ok {
		Resp.Err(c, response.NO_DATASET, "")
		return
	}
	Resp.Succ(c, datasetRep(meta))
}

// DeleteDataset 清除当前数据集
func DeleteDataset(c *gin.Context) {
	analysisService.Store.Clear()
	monitoring.UpdateDatasetRows(0)
	Resp.Succ(c, gin.H{"cleared": true})
}

func datasetRep(meta analysis_service.DatasetMeta) inout.DatasetRep {
	return inout.DatasetRep{
		FileName: meta.FileName,
		Source:   meta.Source,
		RowCount: meta.RowCount,
		Columns:  meta.Columns,
		LoadedAt: utils.FormatTime(meta.LoadedAt),
	}
}

// analysisErrCode 将分析错误映射为响应错误码
func analysisErrCode(err error) int {
	var missing *analysis_service.MissingColumnsError
	var coercion *analysis_service.NumericCoercionError
	switch {
	case errors.Is(err, analysis_service.ErrNoDataset):
		return response.NO_DATASET
	case errors.As(err, &missing), errors.As(err, &coercion):
		return response.INVALID_PARAMS
	default:
		return response.ANALYSIS_FAILED
	}
}
