package catalog

// Component is one deployment in the cluster
type Component struct {
	Name     string `json:"name" yaml:"name"`
	Replicas int    `json:"replicas" yaml:"replicas"`
	CPU      string `json:"cpu" yaml:"cpu"`
	Memory   string `json:"memory" yaml:"memory"`
}

// DataFlow is the ingestion-to-dashboard path, in order
var DataFlow = []string{
	"SCADA Data", "Kafka Ingestion", "Feature Store", "ML Training Pods",
	"Model Registry", "Inference Service", "Grafana Dashboard",
}

var TrainingComponents = []Component{
	{Name: "XGBoost Training Pods", Replicas: 3, CPU: "4 cores", Memory: "16GB"},
	{Name: "TensorFlow GPU Pods", Replicas: 2, CPU: "8 cores + GPU", Memory: "32GB"},
	{Name: "Feature Engineering", Replicas: 5, CPU: "2 cores", Memory: "8GB"},
	{Name: "Data Validation", Replicas: 2, CPU: "2 cores", Memory: "4GB"},
}

var ProductionComponents = []Component{
	{Name: "Inference API Gateway", Replicas: 4, CPU: "2 cores", Memory: "4GB"},
	{Name: "Model Serving (MLflow)", Replicas: 3, CPU: "4 cores", Memory: "8GB"},
	{Name: "Airflow Workers", Replicas: 6, CPU: "2 cores", Memory: "6GB"},
	{Name: "Grafana + Prometheus", Replicas: 2, CPU: "2 cores", Memory: "8GB"},
}

// AirflowDAGs lists the scheduled pipelines by file name
var AirflowDAGs = []Step{
	{Name: "daily_model_retrain.py", Description: "Scheduled daily at 2 AM, pulls 24h data, retrains ensemble models"},
	{Name: "feature_engineering.py", Description: "Runs every 4 hours, calculates rolling statistics and anomaly scores"},
	{Name: "model_validation.py", Description: "Weekly validation against hold-out test set, drift detection"},
	{Name: "prediction_batch.py", Description: "Hourly batch predictions for all 9,247 assets"},
	{Name: "alert_generation.py", Description: "Real-time alert processing when failure probability > threshold"},
}

var ClusterPerformance = []Metric{
	{Label: "Pod Uptime", Value: "99.7%", Delta: "+0.2%"},
	{Label: "CPU Utilization", Value: "67%", Delta: "+5%"},
	{Label: "Memory Usage", Value: "73%", Delta: "+3%"},
	{Label: "Storage IOPS", Value: "12.5K", Delta: "+1.2K"},
}

var ClusterCostOptimisation = []Step{
	{Name: "Auto-scaling", Description: "Cluster scales from 12-45 nodes based on ML training demand"},
	{Name: "Spot Instances", Description: "70% of training workload runs on Azure Spot VMs (-80% cost)"},
	{Name: "Resource Rightsizing", Description: "ML model optimization reduced memory usage by 40%"},
	{Name: "Monthly Infrastructure Cost", Description: "$23,400 (vs $67,000 on-premise equivalent)"},
}

// TotalReplicas sums replicas across components
func TotalReplicas(components []Component) int {
	total := 0
	for _, c := range components {
		total += c.Replicas
	}
	return total
}
