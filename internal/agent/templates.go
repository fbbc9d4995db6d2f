package agent

// Placeholder tokens replaced when scaffolding. Substitution is a literal
// string replace, no templating engine.
const (
	namePlaceholder    = "data-agent-name"
	folderPlaceholder  = "{folder_name}"
	createdPlaceholder = "{created_date}"
)

// notebookTemplate is the default agent notebook. It drives the Fabric Data
// Agent SDK: configure, connect data sources, publish.
const notebookTemplate = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": [
    "# data-agent-name\n",
    "\n",
    "This notebook creates, configures, and publishes the data-agent-name data agent.\n",
    "Run it in a Fabric workspace after uploading with the dad toolkit."
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {
    "tags": [
     "parameters"
    ]
   },
   "outputs": [],
   "source": [
    "agent_name = \"data-agent-name\"\n",
    "lakehouse_name = \"\"\n",
    "table_names = []"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": [
    "%pip install fabric-data-agent-sdk"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": [
    "from fabric.dataagent.client import FabricDataAgentManagement, create_data_agent\n",
    "\n",
    "agent = create_data_agent(agent_name)\n",
    "management = FabricDataAgentManagement(agent_name)"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": [
    "if lakehouse_name:\n",
    "    datasource = management.add_datasource(lakehouse_name, type=\"lakehouse\")\n",
    "    for table in table_names:\n",
    "        datasource.select(\"dbo\", table)"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": [
    "management.publish()"
   ]
  }
 ],
 "metadata": {
  "kernelspec": {
   "display_name": "Synapse PySpark",
   "name": "synapse_pyspark"
  },
  "language_info": {
   "name": "python"
  }
 },
 "nbformat": 4,
 "nbformat_minor": 5
}
`

// readmeTemplate is the companion documentation written at scaffold time.
const readmeTemplate = `# data-agent-name

Data agent scaffolded by the dad toolkit on {created_date}.

## Layout

- ` + "`{folder_name}.ipynb`" + ` - the agent notebook; edit instructions, data
  sources, and example queries here.
- ` + "`config.json`" + ` - lifecycle record maintained by the toolkit; do not
  edit by hand.
- ` + "`{folder_name}_fabric.py`" + ` - compiled Fabric source (generated).

## Workflow

1. ` + "`dad compile \"data-agent-name\"`" + ` - transcode the notebook into Fabric source.
2. ` + "`dad upload \"data-agent-name\"`" + ` - create or update the notebook in the workspace.
3. ` + "`dad run \"data-agent-name\"`" + ` - execute it and wait for the published agent.
`
