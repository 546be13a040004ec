package schema

type Config struct {
	Self       string `yaml:"self"` // operator account
	LedgerNode string `yaml:"ledgerNode"`
	Port       string `yaml:"port"`
	MetricPort string `yaml:"metricPort"`

	Mysql     string `yaml:"mysql"`
	UseSqlite bool   `yaml:"useSqlite"`
	SqliteDir string `yaml:"sqliteDir"`

	QuoteCacheTTL int `yaml:"quoteCacheTTL"` // seconds

	BoltDir   string    `yaml:"boltDir"`
	S3KV      S3KV      `yaml:"s3KV"`
	AliyunKV  AliyunKV  `yaml:"aliyunKV"`
	MongoDBKV MongoDBKV `yaml:"mongoDBKV"`

	Kafka Kafka `yaml:"kafka"`
}

type S3KV struct {
	UseS3     bool   `yaml:"useS3"`
	AccKey    string `yaml:"accKey"`
	SecretKey string `yaml:"secretKey"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
}

type AliyunKV struct {
	UseAliyun bool   `yaml:"useAliyun"`
	Endpoint  string `yaml:"endpoint"`
	AccKey    string `yaml:"accKey"`
	SecretKey string `yaml:"secretKey"`
	Prefix    string `yaml:"prefix"`
}

type MongoDBKV struct {
	UseMongoDB bool   `yaml:"useMongoDB"`
	Uri        string `yaml:"uri"`
	DbName     string `yaml:"dbName"`
}

type Kafka struct {
	Start bool   `yaml:"start"`
	Uri   string `yaml:"uri"`
}
