package edgar

// submissions is the subset of data.sec.gov/submissions/CIK##########.json we read.
// The recent table is column-oriented: entry i of every slice describes the same filing.
type submissions struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			Form            []string `json:"form"`
		} `json:"recent"`
	} `json:"filings"`
}

// folderIndex is the index.json listing of a filing's document folder.
type folderIndex struct {
	Directory struct {
		Item []folderItem `json:"item"`
	} `json:"directory"`
}

type folderItem struct {
	Name string `json:"name"`
}

func (idx folderIndex) names() []string {
	names := make([]string, 0, len(idx.Directory.Item))
	for _, item := range idx.Directory.Item {
		names = append(names, item.Name)
	}
	return names
}
