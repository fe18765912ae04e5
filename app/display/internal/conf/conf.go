package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Storage *Storage `json:"storage"`
}

// Storage 与 market_research 使用相同的报告存储
type Storage struct {
	Driver string    `json:"driver"`
	Dir    string    `json:"dir"`
	Db     *Database `json:"db"`
	Minio  *MinIO    `json:"minio"`
}

type Database struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
	SslMode  string `json:"ssl_mode"`
}

type MinIO struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Prefix    string `json:"prefix"`
	UseSsl    bool   `json:"use_ssl"`
}
