package drive

import (
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// MimeTypeFolder is the MIME type Drive assigns to folders.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// fileFields limits the response to what fileToDomain reads.
const fileFields = "files(id,name,mimeType,modifiedTime,webViewLink,iconLink,size)"

// fileToDomain maps a Drive API file. Google Workspace files report no size.
func fileToDomain(file *drive.File) domain.DriveFile {
	out := domain.DriveFile{
		ID:          file.Id,
		Name:        file.Name,
		MimeType:    file.MimeType,
		WebViewLink: file.WebViewLink,
		IconLink:    file.IconLink,
		Size:        file.Size,
		IsFolder:    file.MimeType == MimeTypeFolder,
	}
	if file.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, file.ModifiedTime); err == nil {
			out.ModifiedTime = t
		}
	}
	return out
}
